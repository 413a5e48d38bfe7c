package pet

import "math"

func New() State {
	return State{
		Mood:   MoodNeutral,
		Energy: DefaultEnergy,
		XP:     0,
		Level:  1,
	}
}

func LevelFor(xp uint32) uint32 {
	return xp/XPPerLevel + 1
}

// AddXP adds delta to xp, saturating at math.MaxUint32, and re-derives level.
func AddXP(s State, delta uint32) State {
	if delta > math.MaxUint32-s.XP {
		s.XP = math.MaxUint32
	} else {
		s.XP += delta
	}
	s.Level = LevelFor(s.XP)
	return s
}

// ApplyEvent is total: every event is valid from every state.
func ApplyEvent(s State, e Event) State {
	next := Normalize(s)
	switch e {
	case EventCommit:
		next = AddXP(next, CommitXP)
		next.Mood = MoodHappy
		next.Energy = clampEnergy(next.Energy + CommitEnergy)
	case EventTestPass:
		next = AddXP(next, TestPassXP)
		next.Mood = MoodHappy
	case EventTestFail:
		next = AddXP(next, TestFailXP)
		next.Mood = MoodSad
	case EventMergeConflict:
		next.Mood = MoodScared
	case EventInactivity:
		next.Energy = clampEnergy(next.Energy - InactivityEnergyDrain)
		if next.Energy <= LowEnergyThreshold {
			next.Mood = MoodSad
		} else {
			next.Mood = MoodNeutral
		}
	case EventNpmInstall:
		next = AddXP(next, NpmInstallXP)
		next.Mood = MoodNeutral
	case EventForcePushMain:
		next.Mood = MoodScared
	case EventFridayDeploy:
		next = AddXP(next, FridayDeployXP)
		next.Mood = MoodScared
	case EventBugFix:
		next = AddXP(next, BugFixXP)
		next.Mood = MoodHappy
	}
	return next
}

// Normalize restores the state invariants on records that did not come out of
// ApplyEvent, such as hand-edited files.
func Normalize(s State) State {
	s.Energy = clampEnergy(s.Energy)
	s.Level = LevelFor(s.XP)
	if int(s.Mood) >= len(moodNames) {
		s.Mood = MoodNeutral
	}
	return s
}

func clampEnergy(v int) int {
	if v < MinEnergy {
		return MinEnergy
	}
	if v > MaxEnergy {
		return MaxEnergy
	}
	return v
}
