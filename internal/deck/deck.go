// Package deck builds the procedural question deck handed to both players of
// a match. The deck is opaque to the match session: it is generated once at
// pairing time and delivered unmodified in the match_found payload.
package deck

import (
	"fmt"
	"math/rand/v2"
)

const proceduralCount = 14

type Option struct {
	Label string `json:"label"`
	Val   string `json:"val"`
}

type Visual struct {
	Type     string `json:"type"`
	Content  string `json:"content,omitempty"`
	Color    string `json:"color,omitempty"`
	Size     string `json:"size,omitempty"`
	ImageUrl string `json:"imageUrl,omitempty"`
	Question string `json:"question,omitempty"`
	Sender   string `json:"sender,omitempty"`
	Msg      string `json:"msg,omitempty"`
}

type Question struct {
	Id      string   `json:"id"`
	Type    string   `json:"type"`
	Prompt  string   `json:"prompt"`
	Visual  Visual   `json:"visual"`
	Options []Option `json:"options"`
	Answer  string   `json:"answer"`
}

type Deck []Question

// New builds one observation opener followed by a procedural run of puzzles.
func New() Deck {
	deck := Deck{observationOpener()}
	generators := []func(string) Question{
		genMathPattern,
		genColorTrap,
		genScamCheck,
		genSpatial,
		genRiddle,
	}
	for i := 0; i < proceduralCount; i++ {
		gen := generators[rand.IntN(len(generators))]
		deck = append(deck, gen(fmt.Sprintf("q_%d", i)))
	}
	return deck
}

// Fixed visual so both players see the same opener.
func observationOpener() Question {
	return Question{
		Id:     "obs_1",
		Type:   "observation",
		Prompt: "MEMORIZE SCENE",
		Visual: Visual{
			Type:     "image",
			ImageUrl: "https://images.unsplash.com/photo-1550751827-4bd374c3f58b?q=80&w=800",
			Question: "WAS THE LIGHT RED?",
		},
		Options: []Option{
			{Label: "YES", Val: "wrong"},
			{Label: "NO", Val: "correct"},
		},
		Answer: "correct",
	}
}

func genMathPattern(id string) Question {
	start := rand.IntN(20) + 1
	step := rand.IntN(5) + 2
	if rand.Float64() > 0.5 && start < 8 {
		return Question{
			Id:     id,
			Type:   "logic",
			Prompt: "COMPLETE PATTERN",
			Visual: Visual{
				Type:    "text",
				Content: fmt.Sprintf("%d, %d, %d, ?", start, start*2, start*4),
				Color:   "text-blue-400",
			},
			Options: shuffled(
				Option{Label: fmt.Sprintf("%d", start*8), Val: "correct"},
				Option{Label: fmt.Sprintf("%d", start*6), Val: "wrong"},
			),
			Answer: "correct",
		}
	}
	return Question{
		Id:     id,
		Type:   "logic",
		Prompt: "NEXT NUMBER",
		Visual: Visual{
			Type:    "text",
			Content: fmt.Sprintf("%d, %d, %d, ?", start, start+step, start+step*2),
			Color:   "text-white",
		},
		Options: shuffled(
			Option{Label: fmt.Sprintf("%d", start+step*3), Val: "correct"},
			Option{Label: fmt.Sprintf("%d", start+step*3+1), Val: "wrong"},
		),
		Answer: "correct",
	}
}

// Stroop test: the command decides whether the word or its color is correct.
func genColorTrap(id string) Question {
	colors := []string{"RED", "BLUE", "GREEN", "YELLOW"}
	cssColors := []string{"text-red-500", "text-blue-500", "text-green-500", "text-yellow-500"}

	wordIdx := rand.IntN(4)
	colorIdx := rand.IntN(4)

	cmd := "TEXT"
	correct := colors[wordIdx]
	if rand.Float64() > 0.5 {
		cmd = "COLOR"
		correct = colors[colorIdx]
	}
	wrong := colors[(colorIdx+1)%4]
	if wrong == correct {
		wrong = colors[(colorIdx+2)%4]
	}

	return Question{
		Id:     id,
		Type:   "logic",
		Prompt: fmt.Sprintf("TAP THE %s", cmd),
		Visual: Visual{
			Type:    "text",
			Content: colors[wordIdx],
			Color:   cssColors[colorIdx],
			Size:    "text-6xl",
		},
		Options: shuffled(
			Option{Label: correct, Val: "correct"},
			Option{Label: wrong, Val: "wrong"},
		),
		Answer: "correct",
	}
}

func genScamCheck(id string) Question {
	scams := []struct {
		msg  string
		kind string
	}{
		{"URGENT: KYC Pending. Update at bit.ly/3x9...", "SCAM"},
		{"Bank: ₹500.00 debited for Hotstar.", "REAL"},
		{"Lotto: You won 1 Crore! Pay ₹500 tax.", "SCAM"},
		{"Mom: I lost my phone. Msg this nr.", "SCAM"},
		{"OTP: 4921 is your verification code.", "REAL"},
	}
	item := scams[rand.IntN(len(scams))]
	realVal, scamVal := "correct", "wrong"
	if item.kind == "SCAM" {
		realVal, scamVal = "wrong", "correct"
	}
	return Question{
		Id:     id,
		Type:   "social",
		Prompt: "REAL OR SCAM?",
		Visual: Visual{
			Type:   "chat",
			Sender: "Unknown",
			Msg:    item.msg,
		},
		Options: []Option{
			{Label: "REAL", Val: realVal},
			{Label: "SCAM", Val: scamVal},
		},
		Answer: "correct",
	}
}

func genSpatial(id string) Question {
	dirs := []string{"NORTH", "EAST", "SOUTH", "WEST"}
	startIdx := rand.IntN(4)
	endIdx := (startIdx + 2) % 4
	return Question{
		Id:     id,
		Type:   "logic",
		Prompt: "SPATIAL LOGIC",
		Visual: Visual{
			Type:    "text",
			Content: fmt.Sprintf("Face %s. Turn 180°.", dirs[startIdx]),
			Color:   "text-yellow-400",
			Size:    "text-3xl",
		},
		Options: shuffled(
			Option{Label: dirs[endIdx], Val: "correct"},
			Option{Label: dirs[startIdx], Val: "wrong"},
		),
		Answer: "correct",
	}
}

func genRiddle(id string) Question {
	riddles := []struct {
		q       string
		correct string
		wrong   string
	}{
		{"I speak without a mouth.", "ECHO", "RADIO"},
		{"What falls but never breaks?", "NIGHT", "GLASS"},
		{"I have keys but no locks.", "PIANO", "DOOR"},
		{"Heavier: 1kg Steel vs 1kg Cotton", "EQUAL", "STEEL"},
	}
	item := riddles[rand.IntN(len(riddles))]
	return Question{
		Id:     id,
		Type:   "crime",
		Prompt: "SOLVE RIDDLE",
		Visual: Visual{
			Type:    "fact",
			Content: item.q,
		},
		Options: shuffled(
			Option{Label: item.correct, Val: "correct"},
			Option{Label: item.wrong, Val: "wrong"},
		),
		Answer: "correct",
	}
}

func shuffled(options ...Option) []Option {
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
