package rules

// MaxExhaustion is the highest exhaustion level a party can reach.
const MaxExhaustion = 6

// exhaustionEffects is the fixed rules text per exhaustion level. The
// wording is load-bearing for GM tooling and must not change.
var exhaustionEffects = [MaxExhaustion + 1]string{
	"No effect",
	"Disadvantage on ability checks",
	"Speed halved",
	"Disadvantage on attack rolls and saving throws",
	"Hit point maximum halved",
	"Speed reduced to 0",
	"Death",
}

// ExhaustionEffect returns the rules text for an exhaustion level. Levels
// outside [0, MaxExhaustion] cannot be produced by the engine's clamped
// setters; they are clamped here as well so a stale persisted value can
// never index out of the table.
func ExhaustionEffect(level int) string {
	if level < 0 {
		level = 0
	}
	if level > MaxExhaustion {
		level = MaxExhaustion
	}
	return exhaustionEffects[level]
}
