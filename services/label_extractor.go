package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Extract turns raw OCR text from a photographed nutrition-facts panel into
// a partially populated NutritionRecord. It never fails: anything that does
// not match simply leaves that nutrient unpopulated.
func Extract(rawText string) NutritionRecord {
	text := normalizeLabelText(rawText)

	var rec NutritionRecord
	for _, p := range labelPatterns {
		for _, alt := range p.alts {
			v, ok, seen := firstCleanMatch(alt, text)
			if !seen {
				continue // try the next, more generic phrasing
			}
			if ok {
				p.set(&rec, v)
			}
			// a matched-but-discarded capture (negative, unparseable)
			// leaves the field unpopulated rather than falling through
			// to a looser pattern
			break
		}
	}
	return rec
}

var (
	labelNoiseRE = regexp.MustCompile(`[^a-zA-Z0-9\s.\-:/%]+`)
	labelSpaceRE = regexp.MustCompile(`\s+`)
)

// normalizeLabelText compensates for OCR noise: stray punctuation and
// line-break artifacts become single spaces while numeric tokens and unit
// suffixes stay intact for the patterns.
func normalizeLabelText(s string) string {
	s = labelNoiseRE.ReplaceAllString(s, " ")
	s = labelSpaceRE.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

const (
	numberPat = `(-?\d+(?:\.\d+)?)`
	gramUnit  = `(?:\s*g\b)?`
	milliUnit = `(?:\s*mg\b)?`
	microUnit = `(?:\s*(?:mcg|ug)\b)?`
)

// labelRE matches a label phrase followed by its first adjacent number and
// an optional unit of the nutrient's unit family. Units are frequently
// dropped on labels, so they are never required for acceptance.
func labelRE(phrase, unit string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + phrase + `\b[\s:]*` + numberPat + unit)
}

type labelPattern struct {
	set func(*NutritionRecord, float64)
	// alternatives in strict order: the longest, most specific phrasing
	// first so an overlapping substring never consumes another nutrient's
	// line ("total carbohydrate" before the bare "carbs")
	alts []*regexp.Regexp
}

var labelPatterns = []labelPattern{
	{
		set: func(r *NutritionRecord, v float64) { r.Calories = &v },
		alts: []*regexp.Regexp{
			labelRE(`calories`, ``),
			labelRE(`energy`, ``),
			labelRE(`kcal`, ``),
			regexp.MustCompile(numberPat + `\s*kcal\b`),
		},
	},
	{
		set:  func(r *NutritionRecord, v float64) { r.Protein = &v },
		alts: []*regexp.Regexp{labelRE(`proteins?`, gramUnit)},
	},
	{
		set: func(r *NutritionRecord, v float64) { r.Carbs = &v },
		alts: []*regexp.Regexp{
			labelRE(`total\s+carbohydrates?`, gramUnit),
			labelRE(`carbohydrates?`, gramUnit),
			labelRE(`carbs`, gramUnit),
		},
	},
	{
		set: func(r *NutritionRecord, v float64) { r.Fat = &v },
		alts: []*regexp.Regexp{
			labelRE(`total\s+fat`, gramUnit),
			labelRE(`((?:un)?saturated\s+|trans\s+|sat\.?\s+)?fat`, gramUnit),
		},
	},
	{
		set: func(r *NutritionRecord, v float64) { r.SaturatedFat = &v },
		alts: []*regexp.Regexp{
			labelRE(`saturated\s+fat`, gramUnit),
			labelRE(`sat\.?\s+fat`, gramUnit),
			labelRE(`saturated`, gramUnit),
		},
	},
	{
		set: func(r *NutritionRecord, v float64) { r.TransFat = &v },
		alts: []*regexp.Regexp{
			labelRE(`trans\s+fat`, gramUnit),
		},
	},
	{
		set:  func(r *NutritionRecord, v float64) { r.Cholesterol = &v },
		alts: []*regexp.Regexp{labelRE(`cholesterol`, milliUnit)},
	},
	{
		set:  func(r *NutritionRecord, v float64) { r.Sodium = &v },
		alts: []*regexp.Regexp{labelRE(`sodium`, milliUnit)},
	},
	{
		set: func(r *NutritionRecord, v float64) { r.Fiber = &v },
		alts: []*regexp.Regexp{
			labelRE(`dietary\s+fib(?:er|re)`, gramUnit),
			labelRE(`fib(?:er|re)`, gramUnit),
		},
	},
	{
		set: func(r *NutritionRecord, v float64) { r.Sugar = &v },
		alts: []*regexp.Regexp{
			labelRE(`total\s+sugars?`, gramUnit),
			labelRE(`(added\s+)?sugars?`, gramUnit),
		},
	},
	{
		set: func(r *NutritionRecord, v float64) { r.AddedSugar = &v },
		alts: []*regexp.Regexp{
			// "includes 5g added sugars" puts the number before the
			// phrase and is the more specific form, so it goes first:
			// the trailing daily-value percent would otherwise satisfy
			// the generic pattern
			regexp.MustCompile(`\bincl(?:udes)?\.?\s*` + numberPat + `\s*g?\s*added\s+sugars?\b`),
			labelRE(`added\s+sugars?`, gramUnit),
		},
	},
	{
		set:  func(r *NutritionRecord, v float64) { r.VitaminD = &v },
		alts: []*regexp.Regexp{labelRE(`vitamin\s+d`, microUnit)},
	},
	{
		set:  func(r *NutritionRecord, v float64) { r.Calcium = &v },
		alts: []*regexp.Regexp{labelRE(`calcium`, milliUnit)},
	},
	{
		set:  func(r *NutritionRecord, v float64) { r.Iron = &v },
		alts: []*regexp.Regexp{labelRE(`iron`, milliUnit)},
	},
	{
		set:  func(r *NutritionRecord, v float64) { r.Potassium = &v },
		alts: []*regexp.Regexp{labelRE(`potassium`, milliUnit)},
	},
}

// firstCleanMatch scans every occurrence of re and returns the first whose
// optional leading qualifier group is empty — so a "saturated fat" line never
// satisfies the bare "fat" pattern. The returned flags distinguish "no
// occurrence at all" (try a looser alternative) from "matched but the capture
// was discarded" (leave the field unpopulated).
func firstCleanMatch(re *regexp.Regexp, text string) (value float64, ok, seen bool) {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if re.NumSubexp() == 2 && m[1] != "" {
			continue // qualified occurrence of a bare phrase
		}
		seen = true
		v, err := strconv.ParseFloat(m[re.NumSubexp()], 64)
		if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false, true
		}
		return v, true, true
	}
	return 0, false, seen
}
