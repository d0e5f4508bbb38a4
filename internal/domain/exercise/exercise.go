// Package exercise contains the pure logic for choosing how an item is
// practiced: which exercise type fits the item's mastery level, and which
// plausible wrong answers accompany a multiple-choice prompt.
package exercise

import "github.com/parla-app/parla-api/internal/domain"

// Type enumerates the exercise forms the client can render.
type Type string

// Possible exercise types
const (
	// TypeIntro presents a new item with no grading; it is only ever
	// selected for items at the NEW stage.
	TypeIntro Type = "intro"

	// TypeAudioToTranslation plays the target audio and asks for the meaning.
	TypeAudioToTranslation Type = "audio_to_translation"

	// TypeTranslationToTarget shows the meaning and asks for the target word.
	TypeTranslationToTarget Type = "translation_to_target"

	// TypeClozeInSentence blanks the target out of its example sentence.
	TypeClozeInSentence Type = "cloze_in_sentence"

	// TypeSentenceToMeaning shows the example sentence and asks for its meaning.
	TypeSentenceToMeaning Type = "sentence_to_meaning"
)

// Pick maps a mastery stage and item richness to an exercise type. It is
// total: every (stage, hasSentencePair) combination yields exactly one type,
// because the session controller always needs something to render. Stages
// outside the known range fall back to the most general form.
func Pick(stage domain.Stage, hasSentencePair bool) Type {
	switch stage {
	case domain.StageNew:
		return TypeIntro
	case domain.Stage1:
		return TypeTranslationToTarget
	case domain.Stage2:
		return TypeAudioToTranslation
	case domain.Stage3, domain.Stage4:
		if hasSentencePair {
			return TypeClozeInSentence
		}
		return TypeTranslationToTarget
	case domain.Stage5:
		if hasSentencePair {
			return TypeSentenceToMeaning
		}
		return TypeAudioToTranslation
	default:
		return TypeTranslationToTarget
	}
}

// PickForItem selects the exercise type for an item given its stage.
func PickForItem(stage domain.Stage, item domain.Item) Type {
	return Pick(stage, item.Core().HasSentencePair())
}
