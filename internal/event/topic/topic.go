package topic

import "strings"

// Topic is a dot-separated event name such as "gesture.swipe.left".
type Topic string

// Pattern wildcards.
const (
	// One matches exactly one segment.
	One = "*"
	// Any matches zero or more segments.
	Any = "**"
)

const sep = "."

// Join builds a topic from segments.
func Join(segments ...string) Topic {
	return Topic(strings.Join(segments, sep))
}

func (t Topic) String() string {
	return string(t)
}

// Child appends one segment.
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Topic(segment)
	}
	return t + sep + Topic(segment)
}

// Segments splits t at the dots. The empty topic has none.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), sep)
}

// IsValid reports whether t is non-empty without empty segments.
func (t Topic) IsValid() bool {
	return t != "" && !strings.Contains(sep+string(t)+sep, sep+sep)
}

// Matches reports whether t is selected by pattern.
func (t Topic) Matches(pattern Topic) bool {
	return match(t.Segments(), pattern.Segments())
}

func match(t, p []string) bool {
	for ; len(p) > 0; p = p[1:] {
		if p[0] == Any {
			for i := range len(t) + 1 {
				if match(t[i:], p[1:]) {
					return true
				}
			}
			return false
		}
		if len(t) == 0 || (p[0] != One && p[0] != t[0]) {
			return false
		}
		t = t[1:]
	}
	return len(t) == 0
}
