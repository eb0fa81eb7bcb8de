// Package advice produces rule-based blood-glucose guidance used when the
// LLM backend is unavailable. Every entry point is pure and never fails:
// this is the terminal branch of the recommendation pipeline.
package advice

import (
	"fmt"
	"hash/fnv"

	"github.com/glucolog/backend/internal/glucose"
)

// Band is a named glucose range driving recommendation selection.
// Inputs are always in mg/dL, the canonical unit; callers convert via the
// glucose package first.
type Band int

const (
	BandLow      Band = iota // value < 70
	BandNormal               // 70 <= value <= 100
	BandElevated             // 100 < value <= 140
	BandHigh                 // value > 140
)

func (b Band) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandNormal:
		return "normal"
	case BandElevated:
		return "elevated"
	default:
		return "high"
	}
}

// BandFor classifies a mg/dL reading into its band.
func BandFor(mgdl float64) Band {
	switch {
	case mgdl < 70:
		return BandLow
	case mgdl <= 100:
		return BandNormal
	case mgdl <= 140:
		return BandElevated
	default:
		return BandHigh
	}
}

// Template sets per band. Each template receives the formatted reading as
// its single argument. Selection between templates is deterministic, so a
// given input always lands in the same band set and the same template.
var generalTemplates = map[Band][]string{
	BandLow: {
		"Your blood sugar is low (%s). Have a fast-acting carbohydrate such as juice or glucose tablets, then a small snack with protein. Monitor your levels closely and consult your healthcare provider if this happens frequently.",
		"Your reading of %s is below target. Raise it with 15-20g of fast-acting carbs, recheck in 15 minutes, and avoid skipping your next meal.",
	},
	BandNormal: {
		"Your blood sugar level of %s looks good! Keep up with your current routine. Remember to maintain regular meal times, stay active, and monitor your levels consistently.",
		"A reading of %s is right in the healthy range. Stick with your meal schedule and activity habits, and keep logging daily to spot trends early.",
	},
	BandElevated: {
		"Your blood sugar is slightly elevated (%s). Consider a short walk, drink water, and keep your next meal light on refined carbohydrates.",
		"A reading of %s is a little above target. Watch portion sizes at your next meal and add some light activity to help bring it down.",
	},
	BandHigh: {
		"Your blood sugar is elevated (%s). Consider increasing your physical activity, monitoring your carbohydrate intake, and staying hydrated. If this persists, consult your healthcare provider.",
		"Your reading of %s is high. Drink plenty of water, limit carbohydrates for the rest of the day, and check your levels again before your next meal.",
	},
}

var mealTemplates = map[Band][]string{
	BandLow: {
		"With a low reading of %s, start with quick carbs, then balanced meals.\nBreakfast: toast with honey and yogurt\nLunch: sandwich with lean protein and fruit\nDinner: pasta with chicken and vegetables\nSnacks: juice, crackers with cheese",
		"Your blood sugar of %s needs raising first. After fast-acting carbs, plan regular balanced meals:\nBreakfast: oatmeal with banana\nLunch: rice bowl with protein\nDinner: potatoes with fish and vegetables\nSnacks: fruit, granola bars",
	},
	BandNormal: {
		"Meal suggestions for a healthy reading of %s:\nBreakfast: oatmeal with berries and nuts, or whole grain toast with avocado\nLunch: grilled chicken salad with mixed greens and olive oil dressing\nDinner: baked salmon with quinoa and steamed vegetables\nSnacks: Greek yogurt with berries, or apple with almond butter",
		"At %s you have plenty of flexibility. Keep meals balanced:\nBreakfast: Greek yogurt with granola and fruit\nLunch: turkey and vegetable wrap with whole grain tortilla\nDinner: lean beef stir-fry with brown rice and vegetables\nSnacks: hummus with carrot sticks, or mixed nuts",
	},
	BandElevated: {
		"Meal suggestions for a slightly elevated reading of %s:\nBreakfast: Greek yogurt with granola and fruit\nLunch: turkey and vegetable wrap with whole grain tortilla\nDinner: lean beef stir-fry with brown rice and vegetables\nSnacks: hummus with carrot sticks, or mixed nuts",
		"At %s, favor lower-carb options for the next few meals:\nBreakfast: eggs with spinach\nLunch: grilled chicken with a large salad\nDinner: fish with roasted vegetables\nSnacks: nuts or cottage cheese",
	},
	BandHigh: {
		"Meal suggestions for an elevated reading of %s:\nBreakfast: scrambled eggs with spinach and whole grain toast\nLunch: grilled fish with quinoa and roasted vegetables\nDinner: chicken breast with sweet potato and green beans\nSnacks: cottage cheese with cucumber, or hard-boiled eggs",
		"Your reading of %s calls for low-carbohydrate choices:\nBreakfast: omelet with vegetables\nLunch: tuna salad over greens\nDinner: grilled chicken with broccoli and cauliflower rice\nSnacks: hard-boiled eggs, celery with almond butter",
	},
}

var exerciseTemplates = map[Band][]string{
	BandLow: {
		"Your blood sugar is low (%s). Avoid exercise until your levels stabilize. Have a snack first; afterwards limit yourself to gentle stretching.",
		"At %s, do not exercise right now. Raise your blood sugar with fast-acting carbs and recheck before any activity; light walking only once you are back above range.",
	},
	BandNormal: {
		"Great time for exercise! Your blood sugar of %s is in a safe range. Consider 30 minutes of moderate activity like walking, swimming, or cycling. Don't forget to monitor your levels during and after exercise.",
		"A reading of %s is ideal for a workout. Mix aerobic activity with light strength training, and keep a fast-acting carb on hand in case your levels drop.",
	},
	BandElevated: {
		"Your reading of %s is slightly elevated; light to moderate exercise such as a brisk walk can help bring it down. Stay hydrated and monitor afterwards.",
		"At %s, a 20-30 minute walk or easy cycling is a good choice. Recheck your levels after activity to see how your body responds.",
	},
	BandHigh: {
		"Your blood sugar is high (%s). Use caution with exercise timing: avoid intense activity until your levels come down, and check for ketones if you have type 1 diabetes. Light walking may help lower blood sugar gradually.",
		"With a reading of %s, be careful about exercising now. Skip high-intensity sessions, hydrate well, and prefer gentle walking until your levels improve.",
	},
}

// Engine selects canned recommendations by glucose band. The zero value is
// ready to use.
type Engine struct{}

// NewEngine returns a fallback recommendation engine.
func NewEngine() *Engine { return &Engine{} }

// pick chooses a template deterministically from the band's set using an
// FNV-1a hash of the inputs. No wall clock, no randomness: identical
// inputs always yield the identical string.
func pick(set []string, parts ...string) string {
	h := fnv.New32a()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return set[h.Sum32()%uint32(len(set))]
}

func formatReading(mgdl float64) string {
	return glucose.FormatValue(mgdl, glucose.UnitMgDl)
}

// Recommend returns general guidance for a mg/dL reading. The meal and
// exercise texts only influence template selection and interpolation;
// they are not analyzed.
func (e *Engine) Recommend(mgdl float64, meal, exercise string) string {
	band := BandFor(mgdl)
	reading := formatReading(mgdl)
	text := fmt.Sprintf(pick(generalTemplates[band], reading, meal, exercise), reading)
	if meal != "" {
		text += fmt.Sprintf("\nLogged meal: %s.", meal)
	}
	if exercise != "" {
		text += fmt.Sprintf("\nLogged exercise: %s.", exercise)
	}
	return text
}

// MealSuggestions returns diet guidance for a mg/dL reading. A non-empty
// preference is acknowledged verbatim.
func (e *Engine) MealSuggestions(mgdl float64, preferences string) string {
	band := BandFor(mgdl)
	reading := formatReading(mgdl)
	text := fmt.Sprintf(pick(mealTemplates[band], reading, preferences), reading)
	if preferences != "" {
		text += fmt.Sprintf("\nAdjust these to fit your preference: %s.", preferences)
	}
	return text
}

// ExerciseRecommendations returns activity guidance for a mg/dL reading.
// When the band is Low the response always advises against exercising.
func (e *Engine) ExerciseRecommendations(mgdl float64, currentExercise string) string {
	band := BandFor(mgdl)
	reading := formatReading(mgdl)
	text := fmt.Sprintf(pick(exerciseTemplates[band], reading, currentExercise), reading)
	if currentExercise != "" && band != BandLow {
		text += fmt.Sprintf("\nCurrent routine: %s.", currentExercise)
	}
	return text
}
