package domain

var advice = map[Condition][]string{
	ConditionHot: {
		"Drink water often, even before you feel thirsty.",
		"Wear light, loose clothing and a hat.",
		"Avoid strenuous activity in the midday sun.",
		"Plan outdoor plans for early morning or evening.",
	},
	ConditionCold: {
		"Dress in warm layers and cover your hands and head.",
		"Allow extra time for travel on cold mornings.",
		"Check on people who are vulnerable to the cold.",
	},
	ConditionWindy: {
		"Secure loose outdoor items, tents and signage.",
		"Take care when cycling or driving high-sided vehicles.",
		"Keep away from trees and scaffolding in strong gusts.",
	},
	ConditionWet: {
		"Carry an umbrella or a waterproof jacket.",
		"Expect slower travel and allow extra time.",
		"Avoid walking or driving through flooded roads.",
		"Have an indoor backup for outdoor events.",
	},
	ConditionComfortable: {
		"Conditions are usually mild on this day. Great for outdoor plans.",
		"Check the local forecast closer to the date.",
	},
}

var generalAdvice = []string{"Check the local forecast before heading out."}

// Advise returns the tips for a dominant condition. The result is a fresh
// slice the caller may modify.
func Advise(c Condition) []string {
	tips, ok := advice[c]
	if !ok {
		tips = generalAdvice
	}
	return append([]string(nil), tips...)
}
