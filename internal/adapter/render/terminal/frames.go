package terminal

import "terminalpet/internal/domain/pet"

var moodFrames = map[pet.Mood][]string{
	pet.MoodHappy: {
		"\n ∧＿∧\n ( ◕‿◕)    ♥\n /つ🍪⊂\\\n しーーーJ\n",
		"\n ∧＿∧\n ( ◕‿◕)    ♥\n /つ  ⊂\\\n しーーーJ\n",
	},
	pet.MoodNeutral: {
		"\n ∧＿∧\n ( ◕‿◕)\n /つ   ⊂\\\n しーーーJ\n",
	},
	pet.MoodSad: {
		"\n ∧＿∧\n ( ；‿；)    ☁\n /つ   ⊂\\\n しーーーJ\n",
	},
	pet.MoodSleeping: {
		"\n ∧＿∧\n ( -‿-)    z\n /つ   ⊂\\\n しーーーJ\n",
		"\n ∧＿∧\n ( -‿-)    zZ\n /つ   ⊂\\\n しーーーJ\n",
	},
	pet.MoodScared: {
		"\n ∧＿∧\n ( ⊙△⊙)    !!\n /つ   ⊂\\\n しーーーJ\n",
		"\n  ∧＿∧\n ( ⊙△⊙)   !!\n /つ   ⊂\\\n しーーーJ\n",
	},
}

var farewellFrames = []string{
	"\n ∧＿∧\n ( ◡‿◡)    Bye\n /つ   ⊂\\\n しーーーJ\n",
	"\n  ∧＿∧\n ( ；_；)    Bye\n /つ   ⊂\\\n しーーーJ\n",
}

// Frames returns the animation for mood. Unknown moods get the neutral pet.
func Frames(mood pet.Mood) []string {
	if frames, ok := moodFrames[mood]; ok {
		return frames
	}
	return moodFrames[pet.MoodNeutral]
}

func FarewellFrames() []string {
	return farewellFrames
}
