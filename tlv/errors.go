package tlv

import "github.com/pkg/errors"

var (
	ErrMissingTag          = errors.New("tlv: missing tag")
	ErrMissingLength       = errors.New("tlv: missing length")
	ErrInvalidTag          = errors.New("tlv: invalid tag")
	ErrTruncatedPayload    = errors.New("tlv: truncated payload")
	ErrInvalidUTF8         = errors.New("tlv: invalid utf-8")
	ErrPayloadTooLarge     = errors.New("tlv: payload too large")
	ErrInvalidLength       = errors.New("tlv: invalid payload length")
	ErrInvalidBool         = errors.New("tlv: invalid boolean value")
	ErrOutOfRange          = errors.New("tlv: integer out of range")
	ErrTrailingBytes       = errors.New("tlv: trailing bytes")
	ErrUnbalancedComposite = errors.New("tlv: unbalanced composite")
	ErrTooDeep             = errors.New("tlv: nesting too deep")
)
