package services

// NutritionRecord is a partially populated set of nutrient amounts as read
// from a label. A nil field means "not detected", which is different from a
// numeric zero and must survive to storage. Values carry the units printed
// on the label (kcal, g, mg, mcg) and are never converted.
type NutritionRecord struct {
	Calories     *float64 `json:"calories,omitempty"`
	Protein      *float64 `json:"protein,omitempty"`
	Carbs        *float64 `json:"carbs,omitempty"`
	Fat          *float64 `json:"fat,omitempty"`
	SaturatedFat *float64 `json:"saturated_fat,omitempty"`
	TransFat     *float64 `json:"trans_fat,omitempty"`
	Cholesterol  *float64 `json:"cholesterol,omitempty"`
	Sodium       *float64 `json:"sodium,omitempty"`
	Fiber        *float64 `json:"fiber,omitempty"`
	Sugar        *float64 `json:"sugar,omitempty"`
	AddedSugar   *float64 `json:"added_sugar,omitempty"`
	VitaminD     *float64 `json:"vitamin_d,omitempty"`
	Calcium      *float64 `json:"calcium,omitempty"`
	Iron         *float64 `json:"iron,omitempty"`
	Potassium    *float64 `json:"potassium,omitempty"`
}

func (r NutritionRecord) fields() []*float64 {
	return []*float64{
		r.Calories, r.Protein, r.Carbs, r.Fat,
		r.SaturatedFat, r.TransFat, r.Cholesterol, r.Sodium,
		r.Fiber, r.Sugar, r.AddedSugar,
		r.VitaminD, r.Calcium, r.Iron, r.Potassium,
	}
}

// HasData reports whether at least one nutrient carries a positive value.
// A record failing this check should route the user to manual entry instead
// of being persisted as an all-zero entry.
func (r NutritionRecord) HasData() bool {
	for _, v := range r.fields() {
		if v != nil && *v > 0 {
			return true
		}
	}
	return false
}

// Scale multiplies every populated field by the serving quantity. Absent
// fields stay absent, they are never fabricated as zero.
func (r NutritionRecord) Scale(quantity float64) NutritionRecord {
	mul := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		s := *v * quantity
		return &s
	}
	return NutritionRecord{
		Calories:     mul(r.Calories),
		Protein:      mul(r.Protein),
		Carbs:        mul(r.Carbs),
		Fat:          mul(r.Fat),
		SaturatedFat: mul(r.SaturatedFat),
		TransFat:     mul(r.TransFat),
		Cholesterol:  mul(r.Cholesterol),
		Sodium:       mul(r.Sodium),
		Fiber:        mul(r.Fiber),
		Sugar:        mul(r.Sugar),
		AddedSugar:   mul(r.AddedSugar),
		VitaminD:     mul(r.VitaminD),
		Calcium:      mul(r.Calcium),
		Iron:         mul(r.Iron),
		Potassium:    mul(r.Potassium),
	}
}
