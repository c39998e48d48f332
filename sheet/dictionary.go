package sheet

import (
	"maps"
	"math/rand"
	"slices"
)

// name fragments for synthetic company names
var (
	namePrefixes = []string{
		"한빛", "새론", "누리", "다온", "미래", "한결", "푸른", "가온", "라온", "늘봄",
		"Acme", "Beta", "Nova", "Orbit", "Pixel", "Vertex", "Uber", "Lumen",
	}
	nameSuffixes = []string{
		"테크", "소프트", "시스템즈", "네트웍스", "랩스", "솔루션", "디자인", "바이오",
		"Labs", "Works", "Systems", "Studio",
	}
	nameForms = []string{"", "(주)", "주식회사 "}
)

// addressBook maps provinces to cities with a few districts each.
var addressBook = map[string]map[string][]string{
	"서울": {
		"강남구": {"역삼동", "삼성동"},
		"마포구": {"서교동", "합정동"},
		"구로구": {"구로동"},
		"중구":  {"을지로"},
	},
	"경기": {
		"성남시": {"분당구", "수정구"},
		"수원시": {"영통구"},
		"안양시": {"동안구"},
	},
	"부산": {
		"해운대구": {"우동"},
		"부산진구": {"부전동"},
	},
	"인천": {
		"연수구": {"송도동"},
		"남동구": {"구월동"},
	},
	"광주": {
		"북구": {"용봉동"},
		"광산구": {"첨단동"},
	},
	"전북": {
		"전주시": {"완산구", "덕진구"},
		"군산시": {"나운동"},
	},
}

// provinces in a fixed order so seeded generation is reproducible
var generatorProvinces = []string{"서울", "경기", "부산", "인천", "광주", "전북"}

func randomName(rng *rand.Rand) string {
	form := nameForms[rng.Intn(len(nameForms))]
	name := namePrefixes[rng.Intn(len(namePrefixes))] + nameSuffixes[rng.Intn(len(nameSuffixes))]
	if form == "(주)" {
		return name + form
	}
	return form + name
}

func randomAddress(rng *rand.Rand) string {
	province := generatorProvinces[rng.Intn(len(generatorProvinces))]
	cities := sortedKeys(addressBook[province])
	city := cities[rng.Intn(len(cities))]
	districts := addressBook[province][city]
	district := districts[rng.Intn(len(districts))]
	return province + " " + city + " " + district + " " + randomStreetNumber(rng)
}

func randomStreetNumber(rng *rand.Rand) string {
	digits := []byte("0123456789")
	n := 1 + rng.Intn(3)
	out := make([]byte, 0, n+1)
	out = append(out, digits[1+rng.Intn(9)])
	for i := 1; i < n; i++ {
		out = append(out, digits[rng.Intn(10)])
	}
	return string(out) + "번지"
}

func sortedKeys(m map[string][]string) []string {
	return slices.Sorted(maps.Keys(m))
}
