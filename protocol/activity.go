package protocol

import (
	"time"

	"github.com/chaisql/locationhistory/decode"
)

// ActivityConfidence is the likelihood of one activity type.
type ActivityConfidence struct {
	Type ActivityType
	// Confidence percentage.
	Confidence uint8
}

// Activity is a set of activity guesses made at a given time.
type Activity struct {
	Activity  []ActivityConfidence
	Timestamp time.Time
}

var activityConfidenceShape = decode.NewShape("ActivityConfidence", decode.Permissive,
	decode.RequiredField("type"),
	decode.RequiredField("confidence"),
)

var activityShape = decode.NewShape("Activity", decode.Permissive,
	decode.RequiredField("activity"),
	decode.RequiredField("timestamp"),
)

// Decode reads an activity confidence object from src.
func (a *ActivityConfidence) Decode(src decode.Source) error {
	*a = ActivityConfidence{}

	return activityConfidenceShape.Decode(src, func(field string) (err error) {
		switch field {
		case "type":
			a.Type, err = activityTypeVariants.Decode(src)
		case "confidence":
			a.Confidence, err = decode.Uint[uint8](src)
		}
		return err
	})
}

// Decode reads an activity object from src.
func (a *Activity) Decode(src decode.Source) error {
	*a = Activity{}

	return activityShape.Decode(src, func(field string) (err error) {
		switch field {
		case "activity":
			a.Activity, err = decode.Slice(src, (*ActivityConfidence).Decode)
		case "timestamp":
			a.Timestamp, err = readTimestamp(src)
		}
		return err
	})
}

// MostLikely returns the activity type with the highest confidence.
// It returns false if there are no guesses.
func (a *Activity) MostLikely() (ActivityConfidence, bool) {
	var best ActivityConfidence
	for i, c := range a.Activity {
		if i == 0 || c.Confidence > best.Confidence {
			best = c
		}
	}

	return best, len(a.Activity) > 0
}
