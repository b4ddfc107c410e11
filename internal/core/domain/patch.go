package domain

import (
	"encoding/json"
	"errors"
	"sort"
)

// TestRecordPatch carries an update to a test record. Nil fields are left
// unchanged. Status and signature fields are deliberately absent.
type TestRecordPatch struct {
	TestType         *string   `json:"test_type,omitempty"`
	TestMethod       *string   `json:"test_method,omitempty"`
	EquipmentUsed    *string   `json:"equipment_used,omitempty"`
	TestDate         *string   `json:"test_date,omitempty"`
	TestTime         *string   `json:"test_time,omitempty"`
	ResultValue      *string   `json:"result_value,omitempty"`
	ResultUnit       *string   `json:"result_unit,omitempty"`
	SpecificationMin *string   `json:"specification_min,omitempty"`
	SpecificationMax *string   `json:"specification_max,omitempty"`
	Comments         *string   `json:"comments,omitempty"`
	DeviationNotes   *string   `json:"deviation_notes,omitempty"`
	RetestRequired   *bool     `json:"retest_required,omitempty"`
	Attachments      *[]string `json:"attachments,omitempty"`
}

// UpdatableFields is the whitelist of patchable record fields.
var UpdatableFields = []string{
	"test_type",
	"test_method",
	"equipment_used",
	"test_date",
	"test_time",
	"result_value",
	"result_unit",
	"specification_min",
	"specification_max",
	"comments",
	"deviation_notes",
	"retest_required",
	"attachments",
}

// DecodeTestRecordPatch parses a JSON object into a patch. Keys outside the
// whitelist are rejected with a ValidationError naming every one of them.
func DecodeTestRecordPatch(data []byte) (TestRecordPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return TestRecordPatch{}, NewValidationError("body", "must be a JSON object")
	}

	allowed := make(map[string]struct{}, len(UpdatableFields))
	for _, f := range UpdatableFields {
		allowed[f] = struct{}{}
	}
	var unknown []string
	for k := range raw {
		if _, ok := allowed[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		verr := &ValidationError{}
		for _, k := range unknown {
			verr.Errors = append(verr.Errors, FieldError{Field: k, Message: "field is not updatable"})
		}
		return TestRecordPatch{}, verr
	}

	var p TestRecordPatch
	for k, v := range raw {
		if string(v) == "null" {
			return TestRecordPatch{}, NewValidationError(k, "must not be null")
		}
	}
	if err := json.Unmarshal(data, &p); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			return TestRecordPatch{}, NewValidationError(te.Field, "has the wrong type")
		}
		return TestRecordPatch{}, NewValidationError("body", err.Error())
	}
	return p, nil
}

// ChangedFields lists the names of the fields the patch sets, in whitelist
// order.
func (p TestRecordPatch) ChangedFields() []string {
	set := map[string]bool{
		"test_type":         p.TestType != nil,
		"test_method":       p.TestMethod != nil,
		"equipment_used":    p.EquipmentUsed != nil,
		"test_date":         p.TestDate != nil,
		"test_time":         p.TestTime != nil,
		"result_value":      p.ResultValue != nil,
		"result_unit":       p.ResultUnit != nil,
		"specification_min": p.SpecificationMin != nil,
		"specification_max": p.SpecificationMax != nil,
		"comments":          p.Comments != nil,
		"deviation_notes":   p.DeviationNotes != nil,
		"retest_required":   p.RetestRequired != nil,
		"attachments":       p.Attachments != nil,
	}
	out := make([]string, 0, len(set))
	for _, f := range UpdatableFields {
		if set[f] {
			out = append(out, f)
		}
	}
	return out
}

// IsEmpty reports whether the patch changes nothing.
func (p TestRecordPatch) IsEmpty() bool { return len(p.ChangedFields()) == 0 }

// TouchesEvaluation reports whether the patch changes an input of Evaluate.
func (p TestRecordPatch) TouchesEvaluation() bool {
	return p.ResultValue != nil || p.SpecificationMin != nil || p.SpecificationMax != nil
}

// Apply writes the patch onto t and re-derives the status when needed.
func (p TestRecordPatch) Apply(t *TestRecord) {
	setString(&t.TestType, p.TestType)
	setString(&t.TestMethod, p.TestMethod)
	setString(&t.EquipmentUsed, p.EquipmentUsed)
	setString(&t.TestDate, p.TestDate)
	setString(&t.TestTime, p.TestTime)
	setString(&t.ResultValue, p.ResultValue)
	setString(&t.ResultUnit, p.ResultUnit)
	setString(&t.SpecificationMin, p.SpecificationMin)
	setString(&t.SpecificationMax, p.SpecificationMax)
	setString(&t.Comments, p.Comments)
	setString(&t.DeviationNotes, p.DeviationNotes)
	if p.RetestRequired != nil {
		t.RetestRequired = *p.RetestRequired
	}
	if p.Attachments != nil {
		t.Attachments = append([]string(nil), (*p.Attachments)...)
	}
	if p.TouchesEvaluation() {
		t.Reevaluate()
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
