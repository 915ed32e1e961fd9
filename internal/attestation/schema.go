package attestation

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"

	dErrors "targetonchain/pkg/domain-errors"
)

// SchemaCountryResidence is the declared field list for the Coinbase country
// residence schema. EAS payloads are ABI-encoded against their declaration.
const SchemaCountryResidence = "verifiedCountry"

// DecodeString decodes an attestation data payload declared as a single
// string field. The payload is the 0x-prefixed ABI encoding of that field.
// Malformed payloads return a bad_request domain error rather than assuming
// the field is present.
func DecodeString(field, data string) (string, error) {
	raw, err := hexutil.Decode(data)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeBadRequest, "attestation payload is not hex")
	}

	typ, err := abi.NewType("string", "", nil)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "build abi string type")
	}

	args := abi.Arguments{{Name: field, Type: typ}}
	values, err := args.Unpack(raw)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeBadRequest,
			fmt.Sprintf("attestation payload does not decode as string %s", field))
	}
	if len(values) == 0 {
		return "", dErrors.New(dErrors.CodeBadRequest, "attestation payload decoded to no values")
	}

	value, ok := values[0].(string)
	if !ok {
		return "", dErrors.New(dErrors.CodeBadRequest, "attestation payload field is not a string")
	}
	return value, nil
}
