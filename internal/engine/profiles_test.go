package engine

import "testing"

func TestProfileTablesValid(t *testing.T) {
	if err := validateProfiles(); err != nil {
		t.Fatalf("validateProfiles: %v", err)
	}
}

func TestProfileKeysMatchIndex(t *testing.T) {
	for i := range Profiles {
		if Profiles[i].Key != Emotion(i) {
			t.Errorf("Profiles[%d].Key = %v", i, Profiles[i].Key)
		}
	}
}

func TestParseEmotion(t *testing.T) {
	for e := Emotion(0); e < emotionCount; e++ {
		got, ok := ParseEmotion(e.String())
		if !ok || got != e {
			t.Errorf("ParseEmotion(%q) = %v, %v", e.String(), got, ok)
		}
	}
	if em, ok := ParseEmotion("furious"); ok || em != EmotionNeutral {
		t.Errorf("ParseEmotion(\"furious\") = %v, %v, want neutral fallback", em, ok)
	}
}

func TestEveryShapeAndStepKindInUse(t *testing.T) {
	var shapes [shapeCount]bool
	var kinds [stepCount]bool
	for i := range Profiles {
		shapes[Profiles[i].Particles.Shape] = true
		for _, s := range Profiles[i].Sequence.Steps {
			kinds[s.Kind] = true
		}
	}
	for s, used := range shapes {
		if !used {
			t.Errorf("emission shape %v unused by any profile", EmissionShape(s))
		}
	}
	for k, used := range kinds {
		if !used {
			t.Errorf("step kind %v unused by any profile", StepKind(k))
		}
	}
}
