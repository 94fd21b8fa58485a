// SPDX-License-Identifier: MPL-2.0

package runconfig

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// EncodeState captures the exported settable state of cfg as a CUE value.
func EncodeState(cfg Configuration) (cue.Value, error) {
	if cfg == nil {
		return cue.Value{}, fmt.Errorf("cannot encode nil configuration")
	}
	v := cuecontext.New().Encode(cfg)
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("failed to encode state of %q: %w", cfg.Name(), err)
	}
	return v, nil
}

// DecodeState writes a previously encoded state into target.
// target must be a pointer-backed configuration of the same type.
func DecodeState(v cue.Value, target Configuration) error {
	if err := v.Decode(target); err != nil {
		return fmt.Errorf("failed to decode state into %q: %w", target.Name(), err)
	}
	return nil
}

// TransferState copies the complete state of src into dst through an
// intermediate CUE value. dst keeps its own name and temporary flag.
func TransferState(src, dst Configuration) error {
	if src.Type() != dst.Type() {
		return fmt.Errorf("cannot transfer state from %s to %s", src.Type(), dst.Type())
	}
	v, err := EncodeState(src)
	if err != nil {
		return err
	}
	name, temporary := dst.Name(), dst.IsTemporary()
	if err := DecodeState(v, dst); err != nil {
		return err
	}
	dst.SetName(name)
	dst.SetTemporary(temporary)
	return nil
}
