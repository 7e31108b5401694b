package profile

// DA Form 2404 (Equipment Inspection and Maintenance Worksheet) layouts,
// measured on the 612x792pt template. Two template revisions are in
// circulation; their coordinates differ slightly and are kept verbatim
// per revision. Note MILES and TYPE_OF_INSPECTION share the y=690 row at
// different x offsets; that is template tuning, not an error.

var da2404Placeholders = map[string]string{
	"ORGANIZATION":       "<organization>",
	"NOMENCLATURE":       "<nomenclature>",
	"MODEL":              "<model>",
	"SERIAL_NUMBER":      "<serial>",
	"MILES":              "<miles>",
	"HOURS":              "<hours>",
	"ROUNDS":             "<rounds>",
	"HOTSTARTS":          "<hotstarts>",
	"DATE":               "<yyyy-mm-dd>",
	"TYPE_OF_INSPECTION": "<inspectionType>",
	"TM_NUMBER":          "<tmNumber>",
	"TM_DATE":            "<tmDate>",
	"TM2_NUMBER":         "<tm2Number>",
	"TM2_DATE":           "<tm2Date>",
	"REMARKS":            "<remarks>",
}

var da2404Labels = map[string]string{
	"ORGANIZATION":       "ORGANIZATION",
	"NOMENCLATURE":       "NOMENCLATURE",
	"MODEL":              "MODEL",
	"SERIAL_NUMBER":      "SERIAL NUMBER",
	"MILES":              "MILES",
	"HOURS":              "HOURS",
	"ROUNDS":             "ROUNDS",
	"HOTSTARTS":          "HOTSTARTS",
	"DATE":               "DATE",
	"TYPE_OF_INSPECTION": "TYPE OF INSPECTION",
	"TM_NUMBER":          "TM NUMBER",
	"TM_DATE":            "TM DATE",
	"TM2_NUMBER":         "TM2 NUMBER",
	"TM2_DATE":           "TM2 DATE",
	"REMARKS":            "REMARKS",
}

var da2404Keys = map[string]string{
	"ORGANIZATION":       "organization",
	"NOMENCLATURE":       "nomenclature",
	"MODEL":              "model",
	"SERIAL_NUMBER":      "serial",
	"MILES":              "miles",
	"HOURS":              "hours",
	"ROUNDS":             "rounds",
	"HOTSTARTS":          "hotstarts",
	"DATE":               "date",
	"TYPE_OF_INSPECTION": "inspectionType",
	"TM_NUMBER":          "tmNumber",
	"TM_DATE":            "tmDate",
	"TM2_NUMBER":         "tm2Number",
	"TM2_DATE":           "tm2Date",
	"REMARKS":            "remarks",
}

func da2404Anchors(inspectionX, tm2DateX float64) []Anchor {
	return []Anchor{
		{Field: "ORGANIZATION", X: 90, Y: 720},
		{Field: "NOMENCLATURE", X: 390, Y: 720},
		{Field: "MODEL", X: 500, Y: 720},
		{Field: "SERIAL_NUMBER", X: 90, Y: 690},
		{Field: "MILES", X: 190, Y: 690},
		{Field: "HOURS", X: 250, Y: 690},
		{Field: "ROUNDS", X: 290, Y: 690},
		{Field: "HOTSTARTS", X: 340, Y: 690},
		{Field: "DATE", X: 440, Y: 690},
		{Field: "TYPE_OF_INSPECTION", X: inspectionX, Y: 690},
		{Field: "TM_NUMBER", X: 90, Y: 660},
		{Field: "TM_DATE", X: 220, Y: 660},
		{Field: "TM2_NUMBER", X: 330, Y: 660},
		{Field: "TM2_DATE", X: tm2DateX, Y: 660},
	}
}

// DA2404RevA is the earlier template revision: remarks render as a single
// wrapped block of at most 14 lines.
var DA2404RevA = &Profile{
	ID:      "da2404-a",
	Font:    "Helvetica",
	Size:    9,
	Anchors: da2404Anchors(490, 500),
	WrapBoxes: []WrapBox{
		{Field: "REMARKS", X: 110, YTop: 355, MaxWidth: 468, LineGap: 11, MaxLines: 14},
	},
	Placeholders: da2404Placeholders,
	Labels:       da2404Labels,
	Keys:         da2404Keys,
	DateField:    "DATE",
}

// DA2404RevB is the later template revision: the remarks area is ruled
// into 14 fixed-height rows, each holding one list item wrapped to at
// most the lines that fit a 22pt slot.
var DA2404RevB = &Profile{
	ID:      "da2404-b",
	Font:    "Helvetica",
	Size:    9,
	Anchors: da2404Anchors(480, 505),
	RowTables: []RowTable{
		{Field: "REMARKS", X: 110, YStart: 355, RowGap: 22, MaxRows: 14, MaxWidth: 468, LineGap: 11, Pad: 3},
	},
	Placeholders: da2404Placeholders,
	Labels:       da2404Labels,
	Keys:         da2404Keys,
	DateField:    "DATE",
}

var registry = map[string]*Profile{
	DA2404RevA.ID: DA2404RevA,
	DA2404RevB.ID: DA2404RevB,
}

// Default returns the profile used when none is configured.
func Default() *Profile {
	return DA2404RevB
}

// ByID returns the profile registered under id, or nil.
func ByID(id string) *Profile {
	return registry[id]
}
