package animreview

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// promptInputs is everything the prompt builder interpolates. Building is a
// pure function of these values: no I/O, no clock, no provider branching.
type promptInputs struct {
	Mode    Mode
	Shape   OutputShape
	FPS     int
	Clipped bool
}

const temporalPreamble = `TEMPORAL PRECISION: This video is sampled at %d frames per second. Each frame represents a %dms window. Your temporal resolution is limited to %dms increments - you cannot observe events between frames.

When reporting timestamps and durations:
- State durations in terms of frame count AND estimated milliseconds (e.g. "~3 frames / ~%dms")
- If an event happens between frames, say so (e.g. "between %ss and %ss")
- Do not report sub-frame precision you cannot actually observe

`

const clippedNote = `ANALYSIS WINDOW: Only the requested sub-range of the recording is under analysis. Report timestamps relative to the start of that window.

`

// rawSectionsInstruction is appended whenever the effective shape is raw. It
// keeps observational claims and causal guesses apart; blending them is the
// single most common failure when this output feeds another agent.
const rawSectionsInstruction = `

Structure your response in exactly two distinct sections and never mix their content:

## Observations
Only what is pixel-visible: positions, timing, colors, frame-by-frame changes, precise timestamps. No speculation here.

## Hypotheses
Possible causes in the underlying code, based only on the visual evidence above. You cannot see the code. For each hypothesis, list alternative explanations that could produce the same visual result, and specific steps (what to log, where to break, what to compare) that would confirm or rule it out.`

var modePrompts = map[Mode]string{
	ModeCheck: `You are reviewing a screen recording of a web animation for basic functionality.

Focus on:
- Does each animation trigger correctly?
- Does it run to completion without breaking?
- Are there obvious visual breaks, layout shifts, or missing elements?

Keep your analysis brief and pass/fail oriented for each animation you observe. Score 1-10 where 5+ means functionally working. Do not provide implementation advice - the developer has full codebase context that you lack.`,

	ModeReview: `You are reviewing a screen recording of a web animation for design quality and polish.

For each animation, evaluate:
- Easing curve quality - does it feel natural or mechanical?
- Timing and duration - too fast, too slow, or just right?
- Choreography - how do multiple animated elements relate in time? Is staggering and sequencing intentional and pleasing?
- Visual consistency and overall polish

Score 1-10 against professional production standards. Your observations about what you see are the primary value. Keep implementation suggestions general and brief - the developer has full codebase context that you lack.`,

	ModeDiagnose: `You are analyzing a screen recording of a web animation that has a reported bug or visual issue.

Provide an extremely detailed, frame-by-frame analysis. For each animation, report precise timestamps, approximate pixel positions, and the exact moment any glitch or unexpected behavior occurs. Describe what happens vs what should happen based on the provided context.

Prioritize precise descriptions of what you see over prescriptive fixes. An agent with full codebase access will use your visual observations to locate the actual bug.`,

	ModeInspire: `You are analyzing a screen recording that shows a desired animation effect the developer wants to recreate.

Your job is to decompose what you see into a precise, technical description that serves as an animation specification.

For each animation or effect, describe:
- What visual properties are changing (position, scale, rotation, opacity, blur, clip-path, color, border-radius, etc.)
- The timing curve - is it linear, ease-out, spring-like, bouncy, stepped? Describe the character of the motion.
- Duration and any delays between stages
- How multiple elements coordinate - staggering, sequencing, overlapping
- Layer ordering and z-index behavior during the animation
- Any 3D perspective or spatial depth effects
- Subtle details that make it feel polished (micro-interactions, overshoot, settle, anticipation)

Describe everything in terms of visual properties and behavior, NOT in terms of any specific library or CSS framework. Do not write implementation code. Your analysis should read like an animation specification that could be implemented in any technology.`,
}

// buildSystemPrompt composes the temporal preamble, the mode's base
// instructions, and the raw-shape sectioning contract. Identical inputs yield
// identical output.
func buildSystemPrompt(in promptInputs) string {
	intervalMS := int(math.Round(1000 / float64(in.FPS)))
	t2 := strconv.FormatFloat(1.0+float64(intervalMS)/1000, 'f', 3, 64)
	t2 = strings.TrimRight(strings.TrimRight(t2, "0"), ".")

	var b strings.Builder
	fmt.Fprintf(&b, temporalPreamble, in.FPS, intervalMS, intervalMS, intervalMS*3, "1.0", t2)
	if in.Clipped {
		b.WriteString(clippedNote)
	}
	b.WriteString(modePrompts[in.Mode])
	if in.Shape == ShapeRaw {
		b.WriteString(rawSectionsInstruction)
	}
	return b.String()
}

// buildUserPrompt wraps the caller's free-text context. The context is passed
// through verbatim, never rewritten.
func buildUserPrompt(userPrompt string) string {
	out := "Analyze the animations in this screen recording."
	if userPrompt != "" {
		out += "\n\nContext: " + userPrompt
	}
	return out
}

// schemaInstruction renders a schema as an inline output-format contract, for
// backends without native schema enforcement.
func schemaInstruction(schema ResponseSchema) string {
	b, _ := json.MarshalIndent(schema.JSONSchema(), "", "  ")
	return fmt.Sprintf(`

OUTPUT FORMAT: You MUST respond with valid JSON matching this schema exactly. Do not include any text before or after the JSON object. Do not wrap it in markdown code fences.

Schema:
%s`, b)
}
