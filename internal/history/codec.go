package history

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/samdwyer/hexclash/internal/entity"
	"github.com/samdwyer/hexclash/internal/event"
	"github.com/samdwyer/hexclash/internal/turn"
)

// wireTurn is the encoded form of a Turn, with changes in envelopes.
type wireTurn struct {
	Round   int            `msgpack:"round"`
	Number  int            `msgpack:"number"`
	Phase   turn.Phase     `msgpack:"phase"`
	Unit    entity.UnitID  `msgpack:"unit"`
	Changes []event.Record `msgpack:"changes"`
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

// EncodeTurn serializes a turn with msgpack.
func EncodeTurn(t Turn) ([]byte, error) {
	w := wireTurn{
		Round:   t.Round,
		Number:  t.Number,
		Phase:   t.Phase,
		Unit:    t.Unit,
		Changes: make([]event.Record, len(t.Changes)),
	}
	for i, c := range t.Changes {
		w.Changes[i] = event.Wrap(c)
	}
	data, err := marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encode turn %d: %w", t.Number, err)
	}
	return data, nil
}

// DecodeTurn reverses EncodeTurn.
func DecodeTurn(data []byte) (Turn, error) {
	var w wireTurn
	if err := unmarshal(data, &w); err != nil {
		return Turn{}, fmt.Errorf("decode turn: %w", err)
	}
	t := Turn{
		Round:   w.Round,
		Number:  w.Number,
		Phase:   w.Phase,
		Unit:    w.Unit,
		Changes: make([]event.Change, len(w.Changes)),
	}
	for i, rec := range w.Changes {
		c, err := rec.Unwrap()
		if err != nil {
			return Turn{}, fmt.Errorf("decode turn %d change %d: %w", w.Number, i, err)
		}
		t.Changes[i] = c
	}
	return t, nil
}

// EncodeSnapshot serializes a snapshot with msgpack.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot of round %d: %w", s.Round, err)
	}
	return data, nil
}

// DecodeSnapshot reverses EncodeSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
