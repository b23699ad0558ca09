package stdlib

import (
	"fmt"
	"time"

	"github.com/lugli-lang/lugli/internal/object"
)

var dateTimeMethods map[string]object.NativeMethodCallback

func init() {
	dateTimeMethods = map[string]object.NativeMethodCallback{
		"format":       dtFormat,
		"add_days":     dtAddDays,
		"add_hours":    dtAddHours,
		"add_minutes":  dtAddMinutes,
		"to_string":    dtToString,
		"unix":         dtUnix,
	}
}

// LookupDateTimeMethod resolves a method name against a DateTime receiver.
func LookupDateTimeMethod(name string) (object.NativeMethodCallback, bool) {
	m, ok := dateTimeMethods[name]
	return m, ok
}

// DateTimeMethodNames lists every DateTime method, for typo suggestions.
func DateTimeMethodNames() []string {
	return sortedKeys(dateTimeMethods)
}

// DateTimeFieldNames lists every readable DateTime field; all but weekday
// can also be set.
func DateTimeFieldNames() []string {
	return []string{"year", "month", "day", "hour", "minute", "second", "weekday"}
}

func receiverDateTime(r object.Value) object.DateTime {
	return object.Unwrap(r).(object.DateTime)
}

// DateTimeGet implements GetProperty on a DateTime — reads a calendar
// component.
func DateTimeGet(d object.DateTime, field string) (object.Value, bool) {
	t := d.Time
	switch field {
	case "year":
		return object.Number(t.Year()), true
	case "month":
		return object.Number(int(t.Month())), true
	case "day":
		return object.Number(t.Day()), true
	case "hour":
		return object.Number(t.Hour()), true
	case "minute":
		return object.Number(t.Minute()), true
	case "second":
		return object.Number(t.Second()), true
	case "weekday":
		return object.Number(int(t.Weekday())), true
	}
	return nil, false
}

// DateTimeSet implements SetProperty on a DateTime — since a DateTime is a
// value type, setting a field produces a new DateTime rather than
// mutating in place.
func DateTimeSet(d object.DateTime, field string, value object.Value) (object.Value, error) {
	n, ok := object.Unwrap(value).(object.Number)
	if !ok {
		return nil, fmt.Errorf("datetime.%s: expected a number", field)
	}
	t := d.Time
	v := int(n)
	switch field {
	case "year":
		return object.DateTime{Time: time.Date(v, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, t.Location())}, nil
	case "month":
		return object.DateTime{Time: time.Date(t.Year(), time.Month(v), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, t.Location())}, nil
	case "day":
		return object.DateTime{Time: time.Date(t.Year(), t.Month(), v, t.Hour(), t.Minute(), t.Second(), 0, t.Location())}, nil
	case "hour":
		return object.DateTime{Time: time.Date(t.Year(), t.Month(), t.Day(), v, t.Minute(), t.Second(), 0, t.Location())}, nil
	case "minute":
		return object.DateTime{Time: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), v, t.Second(), 0, t.Location())}, nil
	case "second":
		return object.DateTime{Time: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), v, 0, t.Location())}, nil
	}
	return nil, fmt.Errorf("datetime has no field %q", field)
}

func dtFormat(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("format", 1, args, false); err != nil {
		return nil, err
	}
	layoutVal, _ := args.At(0)
	layout, ok := object.Unwrap(layoutVal).(object.String)
	if !ok {
		return nil, fmt.Errorf("format: expected a string layout")
	}
	return object.String(receiverDateTime(r).Time.Format(string(layout))), nil
}

func dtAddDays(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	return dtAddDuration(r, args, "add_days", func(n float64) time.Duration {
		return time.Duration(n * float64(24*time.Hour))
	})
}

func dtAddHours(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	return dtAddDuration(r, args, "add_hours", func(n float64) time.Duration {
		return time.Duration(n * float64(time.Hour))
	})
}

func dtAddMinutes(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	return dtAddDuration(r, args, "add_minutes", func(n float64) time.Duration {
		return time.Duration(n * float64(time.Minute))
	})
}

func dtAddDuration(r object.Value, args object.ArgumentValues, name string, toDuration func(float64) time.Duration) (object.Value, error) {
	if err := Arity(name, 1, args, false); err != nil {
		return nil, err
	}
	nVal, _ := args.At(0)
	n, ok := object.Unwrap(nVal).(object.Number)
	if !ok {
		return nil, fmt.Errorf("%s: expected a number", name)
	}
	return object.DateTime{Time: receiverDateTime(r).Time.Add(toDuration(float64(n)))}, nil
}

func dtToString(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("to_string", 0, args, false); err != nil {
		return nil, err
	}
	return object.String(receiverDateTime(r).String()), nil
}

func dtUnix(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("unix", 0, args, false); err != nil {
		return nil, err
	}
	return object.Number(receiverDateTime(r).Time.Unix()), nil
}
