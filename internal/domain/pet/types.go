package pet

import (
	"errors"
	"fmt"
)

var ErrUnknownEvent = errors.New("unknown event")

type Mood uint8

const (
	MoodHappy Mood = iota
	MoodNeutral
	MoodSad
	MoodSleeping
	MoodScared
)

var moodNames = [...]string{
	MoodHappy:    "Happy",
	MoodNeutral:  "Neutral",
	MoodSad:      "Sad",
	MoodSleeping: "Sleeping",
	MoodScared:   "Scared",
}

func (m Mood) String() string {
	if int(m) < len(moodNames) {
		return moodNames[m]
	}
	return fmt.Sprintf("Mood(%d)", uint8(m))
}

func (m Mood) MarshalText() ([]byte, error) {
	if int(m) >= len(moodNames) {
		return nil, fmt.Errorf("invalid mood %d", uint8(m))
	}
	return []byte(moodNames[m]), nil
}

func (m *Mood) UnmarshalText(b []byte) error {
	mood, err := ParseMood(string(b))
	if err != nil {
		return err
	}
	*m = mood
	return nil
}

// ParseMood accepts the persisted mood tag, e.g. "Happy".
func ParseMood(name string) (Mood, error) {
	for i, n := range moodNames {
		if n == name {
			return Mood(i), nil
		}
	}
	return 0, fmt.Errorf("invalid mood %q", name)
}

type Event uint8

const (
	EventCommit Event = iota
	EventTestPass
	EventTestFail
	EventMergeConflict
	EventInactivity
	EventNpmInstall
	EventForcePushMain
	EventFridayDeploy
	EventBugFix

	eventCount
)

var eventNames = [eventCount]string{
	EventCommit:        "commit",
	EventTestPass:      "test-pass",
	EventTestFail:      "test-fail",
	EventMergeConflict: "merge-conflict",
	EventInactivity:    "inactivity",
	EventNpmInstall:    "npm-install",
	EventForcePushMain: "force-push-main",
	EventFridayDeploy:  "friday-deploy",
	EventBugFix:        "bug-fix",
}

func (e Event) String() string {
	if e < eventCount {
		return eventNames[e]
	}
	return fmt.Sprintf("Event(%d)", uint8(e))
}

func (e Event) MarshalText() ([]byte, error) {
	if e >= eventCount {
		return nil, fmt.Errorf("invalid event %d", uint8(e))
	}
	return []byte(eventNames[e]), nil
}

func (e *Event) UnmarshalText(b []byte) error {
	evt, err := ParseEvent(string(b))
	if err != nil {
		return err
	}
	*e = evt
	return nil
}

// ParseEvent maps a kebab-case event name to its Event.
func ParseEvent(name string) (Event, error) {
	for i, n := range eventNames {
		if n == name {
			return Event(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownEvent, name)
}

// Events returns every event in table order.
func Events() []Event {
	out := make([]Event, 0, eventCount)
	for e := Event(0); e < eventCount; e++ {
		out = append(out, e)
	}
	return out
}

// EventNames returns the accepted event names in table order.
func EventNames() []string {
	return append([]string(nil), eventNames[:]...)
}

type State struct {
	Mood   Mood   `json:"mood"`
	Energy int    `json:"energy"`
	XP     uint32 `json:"xp"`
	Level  uint32 `json:"level"`
}
