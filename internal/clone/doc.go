// SPDX-License-Identifier: MPL-2.0

// Package clone produces independent copies of run configurations so that a
// transaction can mutate the copy without touching the registry's original.
//
// Known variants are copied by a typed routine. Any other variant falls back
// to a full-state transfer through runconfig.TransferState. If both fail the
// clone is still returned with factory defaults and the Report is marked
// degraded; that outcome is not an error.
package clone
