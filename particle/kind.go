package particle

import "fmt"

// Kind tags what a particle represents. Systems that react to one kind,
// such as rain putting out fires, filter on it.
type Kind uint8

const (
	KindNormal Kind = iota
	KindFountain
	KindExplosion
	KindSmoke
	KindRain
	KindFog
	KindFire
	KindCloud
)

var kindNames = [...]string{
	KindNormal:    "normal",
	KindFountain:  "fountain",
	KindExplosion: "explosion",
	KindSmoke:     "smoke",
	KindRain:      "rain",
	KindFog:       "fog",
	KindFire:      "fire",
	KindCloud:     "cloud",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown particle kind %q", s)
}

// MarshalText writes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts the names ParseKind does.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
