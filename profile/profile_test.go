package profile

import "testing"

func TestRegistry(t *testing.T) {
	if got := ByID("da2404-a"); got != DA2404RevA {
		t.Errorf("ByID(da2404-a) = %v", got)
	}
	if got := ByID("da2404-b"); got != DA2404RevB {
		t.Errorf("ByID(da2404-b) = %v", got)
	}
	if got := ByID("no-such-form"); got != nil {
		t.Errorf("ByID(no-such-form) = %v, want nil", got)
	}
	if Default() != DA2404RevB {
		t.Error("Default() is not the rev B profile")
	}
}

func TestFieldsCoverEveryPlaceholder(t *testing.T) {
	for _, p := range []*Profile{DA2404RevA, DA2404RevB} {
		fields := p.Fields()
		if len(fields) != len(p.Placeholders) {
			t.Errorf("%s: %d fields, %d placeholders", p.ID, len(fields), len(p.Placeholders))
		}
		seen := make(map[string]bool, len(fields))
		for _, f := range fields {
			if seen[f] {
				t.Errorf("%s: duplicate field %s", p.ID, f)
			}
			seen[f] = true
			if _, ok := p.Placeholders[f]; !ok {
				t.Errorf("%s: field %s has no placeholder", p.ID, f)
			}
			if _, ok := p.Labels[f]; !ok {
				t.Errorf("%s: field %s has no label", p.ID, f)
			}
			if _, ok := p.Keys[f]; !ok {
				t.Errorf("%s: field %s has no payload key", p.ID, f)
			}
		}
	}
}

func TestAnchorCoordinates(t *testing.T) {
	// Spot-check measured coordinates that must never drift.
	want := map[string][2]float64{
		"ORGANIZATION":  {90, 720},
		"NOMENCLATURE":  {390, 720},
		"MODEL":         {500, 720},
		"SERIAL_NUMBER": {90, 690},
		"TM_NUMBER":     {90, 660},
	}
	for _, a := range DA2404RevB.Anchors {
		if xy, ok := want[a.Field]; ok {
			if a.X != xy[0] || a.Y != xy[1] {
				t.Errorf("%s at (%v,%v), want (%v,%v)", a.Field, a.X, a.Y, xy[0], xy[1])
			}
			delete(want, a.Field)
		}
	}
	for f := range want {
		t.Errorf("anchor %s missing", f)
	}
}

func TestRevisionsDifferOnlyWhereMeasured(t *testing.T) {
	// MILES and TYPE_OF_INSPECTION intentionally share y=690; the revisions
	// move TYPE_OF_INSPECTION and TM2_DATE horizontally.
	find := func(p *Profile, field string) Anchor {
		for _, a := range p.Anchors {
			if a.Field == field {
				return a
			}
		}
		t.Fatalf("%s: no anchor %s", p.ID, field)
		return Anchor{}
	}
	if a := find(DA2404RevA, "TYPE_OF_INSPECTION"); a.X != 490 {
		t.Errorf("rev A TYPE_OF_INSPECTION x = %v", a.X)
	}
	if a := find(DA2404RevB, "TYPE_OF_INSPECTION"); a.X != 480 {
		t.Errorf("rev B TYPE_OF_INSPECTION x = %v", a.X)
	}
	if m, ti := find(DA2404RevB, "MILES"), find(DA2404RevB, "TYPE_OF_INSPECTION"); m.Y != ti.Y {
		t.Errorf("MILES y %v and TYPE_OF_INSPECTION y %v diverged", m.Y, ti.Y)
	}
}

func TestRemarksAreaShapePerRevision(t *testing.T) {
	if DA2404RevA.IsRowField("REMARKS") {
		t.Error("rev A REMARKS should be a wrap box")
	}
	if len(DA2404RevA.WrapBoxes) != 1 || DA2404RevA.WrapBoxes[0].MaxLines != 14 {
		t.Errorf("rev A wrap boxes = %+v", DA2404RevA.WrapBoxes)
	}
	if !DA2404RevB.IsRowField("REMARKS") {
		t.Error("rev B REMARKS should be a row table")
	}
	rt := DA2404RevB.RowTables[0]
	if rt.MaxRows != 14 || rt.RowGap != 22 || rt.LineGap != 11 || rt.Pad != 3 {
		t.Errorf("rev B row table = %+v", rt)
	}
}

func TestLabelAndKeyFallBackToFieldName(t *testing.T) {
	p := &Profile{}
	if got := p.Label("CUSTOM"); got != "CUSTOM" {
		t.Errorf("Label fallback = %q", got)
	}
	if got := p.Key("CUSTOM"); got != "CUSTOM" {
		t.Errorf("Key fallback = %q", got)
	}
}
