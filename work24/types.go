package work24

import (
	"fmt"
	"strings"

	"github.com/pb33f/jobific/motor"
)

// wantedRoot matches both the listing payload and the error payload; the
// root element name is not checked.
type wantedRoot struct {
	Total       int      `xml:"total"`
	StartPage   int      `xml:"startPage"`
	Display     int      `xml:"display"`
	Wanted      []Wanted `xml:"wanted"`
	Message     string   `xml:"message"`
	MessageCode string   `xml:"messageCd"`
}

// Wanted is a single job posting.
type Wanted struct {
	WantedAuthNo string `xml:"wantedAuthNo"`
	Company      string `xml:"company"`
	BusinessNo   string `xml:"busino"`
	IndustryName string `xml:"indTpNm"`
	Title        string `xml:"title"`
	SalaryType   string `xml:"salTpNm"`
	Salary       string `xml:"sal"`
	MinSalary    string `xml:"minSal"`
	MaxSalary    string `xml:"maxSal"`
	Region       string `xml:"region"`
	HolidayType  string `xml:"holidayTpNm"`
	MinEducation string `xml:"minEdubg"`
	Career       string `xml:"career"`
	RegDate      string `xml:"regDt"`
	CloseDate    string `xml:"closeDt"`
	InfoSvc      string `xml:"infoSvc"`
	WantedInfo   string `xml:"wantedInfoUrl"`
	MobileURL    string `xml:"wantedMobileInfoUrl"`
	ZipCode      string `xml:"zipCd"`
	StreetName   string `xml:"strtnmCd"`
	BasicAddress string `xml:"basicAddr"`
	DetailAddr   string `xml:"detailAddr"`
	EmpType      string `xml:"empTpCd"`
	JobsCode     string `xml:"jobsCd"`
}

// DetailURL links to the posting on work.go.kr
func (w *Wanted) DetailURL() string {
	if w.WantedAuthNo == "" {
		return ""
	}
	return fmt.Sprintf(DetailURLFormat, w.WantedAuthNo)
}

// Record converts the posting into a dataset record. The display name is the
// company, the classification the region.
func (w *Wanted) Record() motor.Record {
	fields := map[string]string{}
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			fields[key] = value
		}
	}
	set(motor.FieldCompany, w.Company)
	set(motor.FieldTitle, w.Title)
	set(motor.FieldRegion, w.Region)
	set(motor.FieldSalary, w.Salary)
	set(motor.FieldEmploymentType, w.HolidayType)
	set(motor.FieldWantedAuthNo, w.WantedAuthNo)
	set(motor.FieldDetailURL, w.DetailURL())
	set("closeDt", w.CloseDate)
	set("career", w.Career)

	return motor.Record{
		Name:           strings.TrimSpace(w.Company),
		Classification: strings.TrimSpace(w.Region),
		Fields:         fields,
	}
}
