package wire

import (
	"fmt"
	"io/ioutil"
	"testing"
	"time"

	"skirmish/tlv"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Unix(1234567890, 0)

// testRecordEncoding checks that input encodes to the named fixture and that
// the fixture decodes back into a value equal to input. input and proto
// must be pointers to the same type.
func testRecordEncoding(t *testing.T, fixtureName string, input tlv.Encodable, proto tlv.Decodable) {
	fixtureData, err := ioutil.ReadFile(fmt.Sprintf("testdata/%s", fixtureName))
	require.NoError(t, err)

	encoded, err := tlv.Marshal(input)
	require.NoError(t, err)
	require.EqualValues(t, fixtureData, encoded)

	require.NoError(t, tlv.Unmarshal(fixtureData, proto))
	if diff := cmp.Diff(input, proto, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", fixtureName, diff)
	}
}
