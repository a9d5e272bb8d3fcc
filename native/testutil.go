package native

import (
	"bytes"
	"fmt"
	"math"

	"github.com/goccy/go-json"
)

// TestUtilCreateEvent allocates an empty event for tests to append
// messages to.
func TestUtilCreateEvent(eventType int32) *Event {
	return newEvent(eventType)
}

// TestUtilAppendMessage appends a message whose element tree is built from
// a JSON document. Field order in the document is preserved in the tree.
func TestUtilAppendMessage(ev *Event, out **Message, msgType *Name, body []byte) int32 {
	root, code := TestUtilCreateElement(msgType, body)
	if code != StatusOK {
		return code
	}
	m := newMessage(msgType, root)
	ev.messages = append(ev.messages, m)
	if out != nil {
		*out = m
	}
	return StatusOK
}

// TestUtilCreateElement builds a standalone element tree from a JSON
// object.
func TestUtilCreateElement(name *Name, body []byte) (*Element, int32) {
	v, err := parseOrdered(body)
	if err != nil {
		logEmit(LogSeverityError, fmt.Sprintf("testutil: bad element JSON: %v", err))
		return nil, ErrorIllegalArg
	}
	obj, ok := v.(*orderedObject)
	if !ok {
		return nil, ErrorIllegalArg
	}
	root := newElement(name, DatatypeSequence, false)
	root.null = false
	if code := fillSequence(root, obj); code != StatusOK {
		return nil, code
	}
	return root, StatusOK
}

// TestUtilMessageSetTopic stamps the topic a live runtime would have
// attached to a subscription data message.
func TestUtilMessageSetTopic(m *Message, topic string) {
	m.topic = topic
}

// TestUtilMessageAddCorrelationID appends cid to the message.
func TestUtilMessageAddCorrelationID(m *Message, cid CorrelationID) {
	m.cids = append(m.cids, cid)
}

// TestUtilPostEvent injects an event into a session's delivery path,
// exercising the same queue or dispatcher a live runtime would use.
func TestUtilPostEvent(s *Session, ev *Event) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != sessionStarted {
		return ErrorIllegalState
	}
	s.postLocked(ev)
	return StatusOK
}

// orderedObject is a JSON object with insertion order retained. The stock
// map decode would shuffle fields, and element trees are order-sensitive.
type orderedObject struct {
	keys []string
	vals []any
}

func parseOrdered(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := &orderedObject{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T", keyTok)
				}
				val, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				obj.keys = append(obj.keys, key)
				obj.vals = append(obj.vals, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			var arr []any
			for dec.More() {
				val, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	default:
		return tok, nil
	}
}

// fillSequence populates a sequence element from a parsed object.
func fillSequence(seq *Element, obj *orderedObject) int32 {
	for i, key := range obj.keys {
		child, code := buildField(NameCreate(key), obj.vals[i])
		if code != StatusOK {
			return code
		}
		seq.children = append(seq.children, child)
	}
	return StatusOK
}

func buildField(name *Name, v any) (*Element, int32) {
	switch x := v.(type) {
	case *orderedObject:
		el := newElement(name, DatatypeSequence, false)
		el.null = false
		if code := fillSequence(el, x); code != StatusOK {
			return nil, code
		}
		return el, StatusOK
	case []any:
		return buildArrayField(name, x)
	case nil:
		el := newElement(name, DatatypeString, false)
		el.values = append(el.values, value{null: true})
		return el, StatusOK
	default:
		dt, sv, code := scalarOf(x)
		if code != StatusOK {
			return nil, code
		}
		el := newElement(name, dt, false)
		el.null = false
		el.values = append(el.values, value{v: sv})
		return el, StatusOK
	}
}

func buildArrayField(name *Name, items []any) (*Element, int32) {
	if len(items) == 0 {
		el := newElement(name, DatatypeSequence, true)
		el.null = false
		return el, StatusOK
	}
	if _, ok := items[0].(*orderedObject); ok {
		el := newElement(name, DatatypeSequence, true)
		el.null = false
		for _, item := range items {
			obj, ok := item.(*orderedObject)
			if !ok {
				return nil, ErrorIllegalArg
			}
			var entry *Element
			if code := ElementAppendElement(el, &entry); code != StatusOK {
				return nil, code
			}
			if code := fillSequence(entry, obj); code != StatusOK {
				return nil, code
			}
		}
		return el, StatusOK
	}
	dt, first, code := scalarOf(items[0])
	if code != StatusOK {
		return nil, code
	}
	el := newElement(name, dt, true)
	el.null = false
	el.values = append(el.values, value{v: first})
	for _, item := range items[1:] {
		idt, sv, code := scalarOf(item)
		if code != StatusOK {
			return nil, code
		}
		if idt != dt {
			conv, ccode := convert(sv, dt)
			if ccode != StatusOK {
				return nil, ErrorIllegalArg
			}
			sv = conv
		}
		el.values = append(el.values, value{v: sv})
	}
	return el, StatusOK
}

// scalarOf maps a decoded JSON scalar to a data type tag and stored value.
// Integers that fit 32 bits become Int32, wider ones Int64, and any other
// number Float64.
func scalarOf(v any) (int32, any, int32) {
	switch x := v.(type) {
	case bool:
		return DatatypeBool, x, StatusOK
	case string:
		return DatatypeString, x, StatusOK
	case json.Number:
		if i, err := x.Int64(); err == nil {
			if i >= math.MinInt32 && i <= math.MaxInt32 {
				return DatatypeInt32, int32(i), StatusOK
			}
			return DatatypeInt64, i, StatusOK
		}
		f, err := x.Float64()
		if err != nil {
			return 0, nil, ErrorIllegalArg
		}
		return DatatypeFloat64, f, StatusOK
	}
	return 0, nil, ErrorIllegalArg
}
