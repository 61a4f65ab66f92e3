package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
)

// Activity is one extracurricular offering and its roster.
// MaxParticipants is informational; enrollment does not check it.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// Has reports whether email is on the roster.
func (a Activity) Has(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Clone returns a copy that shares no memory with a.
func (a Activity) Clone() Activity {
	a.Participants = slices.Clone(a.Participants)
	if a.Participants == nil {
		a.Participants = []string{}
	}
	return a
}

// ActivityRepository owns every roster. Enroll and Unenroll are atomic
// check-then-mutate operations.
type ActivityRepository interface {
	List(ctx context.Context) Catalog
	Enroll(ctx context.Context, name, email string) error
	Unenroll(ctx context.Context, name, email string) error
}

// Catalog is an ordered, read-only set of activities keyed by name.
type Catalog struct {
	activities []Activity
	index      map[string]int
}

// NewCatalog copies activities into a catalog. Later duplicates of a name
// replace earlier ones in place.
func NewCatalog(activities []Activity) Catalog {
	c := Catalog{index: make(map[string]int, len(activities))}
	for _, a := range activities {
		if i, ok := c.index[a.Name]; ok {
			c.activities[i] = a.Clone()
			continue
		}
		c.index[a.Name] = len(c.activities)
		c.activities = append(c.activities, a.Clone())
	}
	return c
}

func (c Catalog) Len() int {
	return len(c.activities)
}

// Get returns a deep copy of the named activity.
func (c Catalog) Get(name string) (Activity, bool) {
	i, ok := c.index[name]
	if !ok {
		return Activity{}, false
	}
	return c.activities[i].Clone(), true
}

// Names lists activity names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c.activities))
	for i, a := range c.activities {
		names[i] = a.Name
	}
	return names
}

type activityJSON struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// MarshalJSON renders the catalog as an object keyed by activity name,
// keeping catalog order.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range c.activities {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		participants := a.Participants
		if participants == nil {
			participants = []string{}
		}
		value, err := json.Marshal(activityJSON{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    participants,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the MarshalJSON shape, keeping document order.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog must be a JSON object")
	}

	var activities []Activity
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read activity name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("activity name must be a string")
		}

		var v activityJSON
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("decode activity %q: %w", name, err)
		}
		if v.MaxParticipants < 0 {
			return fmt.Errorf("activity %q: max_participants must not be negative", name)
		}

		activities = append(activities, Activity{
			Name:            name,
			Description:     v.Description,
			Schedule:        v.Schedule,
			MaxParticipants: v.MaxParticipants,
			Participants:    dedupe(v.Participants),
		})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read catalog end: %w", err)
	}

	*c = NewCatalog(activities)
	return nil
}

func dedupe(emails []string) []string {
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		if !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	return out
}
