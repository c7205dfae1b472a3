package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// departmentEntry pairs a lowercase keyword with its canonical
// department name. The table is a slice, not a map: iteration order is
// the substring-match tie-break and must be deterministic.
type departmentEntry struct {
	keyword   string
	canonical string
}

var departmentTable = []departmentEntry{
	// Dental
	{"dentist", "Dentistry"},
	{"dental", "Dentistry"},
	{"teeth", "Dentistry"},
	{"tooth", "Dentistry"},
	{"orthodontist", "Dentistry"},

	// General Medicine
	{"doctor", "General Medicine"},
	{"physician", "General Medicine"},
	{"gp", "General Medicine"},
	{"general", "General Medicine"},
	{"checkup", "General Medicine"},
	{"check-up", "General Medicine"},
	{"consultation", "General Medicine"},

	// Cardiology
	{"cardiologist", "Cardiology"},
	{"cardiology", "Cardiology"},
	{"heart", "Cardiology"},

	// Dermatology
	{"dermatologist", "Dermatology"},
	{"dermatology", "Dermatology"},
	{"skin", "Dermatology"},

	// Ophthalmology
	{"ophthalmologist", "Ophthalmology"},
	{"ophthalmology", "Ophthalmology"},
	{"eye", "Ophthalmology"},
	{"eyes", "Ophthalmology"},
	{"optometrist", "Ophthalmology"},

	// Orthopedics
	{"orthopedic", "Orthopedics"},
	{"orthopedics", "Orthopedics"},
	{"bone", "Orthopedics"},
	{"bones", "Orthopedics"},
	{"joints", "Orthopedics"},

	// Pediatrics
	{"pediatrician", "Pediatrics"},
	{"pediatrics", "Pediatrics"},
	{"child", "Pediatrics"},
	{"children", "Pediatrics"},

	// ENT
	{"ent", "ENT"},
	{"ear", "ENT"},
	{"nose", "ENT"},
	{"throat", "ENT"},

	// Neurology
	{"neurologist", "Neurology"},
	{"neurology", "Neurology"},
	{"brain", "Neurology"},
	{"nerve", "Neurology"},

	// Psychiatry
	{"psychiatrist", "Psychiatry"},
	{"psychiatry", "Psychiatry"},
	{"mental", "Psychiatry"},
	{"psychological", "Psychiatry"},

	// Gynecology
	{"gynecologist", "Gynecology"},
	{"gynecology", "Gynecology"},
	{"obgyn", "Gynecology"},
	{"ob-gyn", "Gynecology"},
}

var titleCaser = cases.Title(language.English)

// CanonicalDepartment maps a free-form phrase onto the fixed department
// taxonomy: exact keyword match first, then substring match in either
// direction (first table entry wins), then a title-cased fallback of the
// original phrase. Canonicalization degrades gracefully rather than
// failing the pipeline.
func CanonicalDepartment(phrase string) string {
	lower := strings.ToLower(strings.TrimSpace(phrase))
	if lower == "" {
		return ""
	}

	for _, entry := range departmentTable {
		if entry.keyword == lower {
			return entry.canonical
		}
	}

	for _, entry := range departmentTable {
		if strings.Contains(lower, entry.keyword) || strings.Contains(entry.keyword, lower) {
			return entry.canonical
		}
	}

	return titleCaser.String(strings.TrimSpace(phrase))
}
