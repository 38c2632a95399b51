package mock

import (
	"math/rand"
	"sort"
)

// draw samples size questions without replacement. With questions from more
// than one section the sample is stratified proportionally to section size,
// using largest remainders to settle the leftover slots.
func draw(rng *rand.Rand, bank []Question, size int) ([]Question, error) {
	if len(bank) < size {
		return nil, ErrInsufficientQuestions
	}

	sections := map[string][]Question{}
	for _, question := range bank {
		sections[question.Section] = append(sections[question.Section], question)
	}
	if len(sections) == 1 {
		return sample(rng, bank, size), nil
	}

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	type share struct {
		name      string
		count     int
		remainder float64
	}
	shares := make([]share, 0, len(names))
	allocated := 0
	for _, name := range names {
		exact := float64(size) * float64(len(sections[name])) / float64(len(bank))
		count := int(exact)
		shares = append(shares, share{name: name, count: count, remainder: exact - float64(count)})
		allocated += count
	}

	// Hand out the remaining slots by largest remainder, but only to
	// sections that still have spare questions.
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].remainder > shares[j].remainder
	})
	for i := 0; allocated < size; i = (i + 1) % len(shares) {
		if shares[i].count < len(sections[shares[i].name]) {
			shares[i].count++
			allocated++
		}
	}

	var picked []Question
	for _, s := range shares {
		picked = append(picked, sample(rng, sections[s.name], s.count)...)
	}
	sort.Slice(picked, func(i, j int) bool { return picked[i].ID < picked[j].ID })
	return picked, nil
}

func sample(rng *rand.Rand, questions []Question, size int) []Question {
	shuffled := make([]Question, len(questions))
	copy(shuffled, questions)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:size]
}
