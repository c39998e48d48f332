package tui

const (
	tableVerticalPadding = 4
	borderPadding        = 6
	minFlexColumnWidth   = 8

	numberColumnWidth = 5

	// modal dimensions
	pickerModalWidth   = 34
	pickerVisibleLines = 12

	// search bar takes one bordered line of input
	searchBarHeight = 3

	searchCharLimit = 64
)

// fallbacks shown for blank job fields
const (
	fallbackTitle          = "제목 없음"
	fallbackCompany        = "회사명 없음"
	fallbackRegion         = "지역 정보 없음"
	fallbackSalary         = "급여 정보 없음"
	fallbackEmploymentType = "고용형태 정보 없음"
	fallbackName           = "이름 없음"
	fallbackAddress        = "주소 정보 없음"
)

// allOptionLabel is the picker entry that clears a selection.
const allOptionLabel = "전체"
