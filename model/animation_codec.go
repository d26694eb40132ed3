package model

import "github.com/forgekit/forge/format"

// Encode serializes an Animation to its canonical byte form.
func (a *Animation) Encode() []byte {
	e := newEncoder()
	e.str(a.Name)
	e.f64(a.Duration)

	e.u32(uint32(len(a.Channels)))
	for _, c := range a.Channels {
		e.str(c.JointName)
		e.u8(uint8(c.Kind))
		e.u32(uint32(c.Components))
		e.f64s(c.Times)
		e.f32s(c.Values)
	}

	return e.Bytes()
}

// DecodeAnimation parses an Animation from bytes produced by Encode.
func DecodeAnimation(data []byte) (*Animation, error) {
	d := newDecoder(data)

	name, err := d.str()
	if err != nil {
		return nil, err
	}
	duration, err := d.f64()
	if err != nil {
		return nil, err
	}

	count, err := d.u32()
	if err != nil {
		return nil, err
	}

	channels := make([]Channel, count)
	for i := range channels {
		jointName, err := d.str()
		if err != nil {
			return nil, err
		}
		kind, err := d.u8()
		if err != nil {
			return nil, err
		}
		components, err := d.u32()
		if err != nil {
			return nil, err
		}
		times, err := d.f64s()
		if err != nil {
			return nil, err
		}
		values, err := d.f32s()
		if err != nil {
			return nil, err
		}

		channels[i] = Channel{
			JointName:  jointName,
			Kind:       format.KeyframeKind(kind),
			Times:      times,
			Values:     values,
			Components: int(components),
		}
	}

	return &Animation{Name: name, Duration: duration, Channels: channels}, nil
}
