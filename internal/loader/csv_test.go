package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSV_PreservesOrderAndLines(t *testing.T) {
	in := "platform_name\nNequi\nDaviplata\n\nBancolombia\n"

	recs, err := DecodeCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "Nequi", recs[0].Row["platform_name"])
	assert.Equal(t, "Daviplata", recs[1].Row["platform_name"])
	assert.Equal(t, "Bancolombia", recs[2].Row["platform_name"])
	assert.Equal(t, 2, recs[0].Line)
	assert.Equal(t, 5, recs[2].Line)
}

func TestDecodeCSV_QuotedMultilineField(t *testing.T) {
	in := "full_name,address\n\"Ana Ruiz\",\"Calle 1\nApto 2\"\n"

	recs, err := DecodeCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Calle 1\nApto 2", recs[0].Row["address"])
}

func TestDecodeCSV_CRLFExport(t *testing.T) {
	in := "full_name,address\r\nAna Ruiz,\"Calle 1\r\nApto 2\"\r\nLuis,Calle 3\r\n"

	recs, err := DecodeCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	// Line breaks inside quotes come back as a bare newline.
	assert.Equal(t, "Calle 1\nApto 2", recs[0].Row["address"])
	assert.Equal(t, "Calle 1 Apto 2", CollapseNewlines(recs[0].Row["address"]))
	assert.Equal(t, "Calle 3", recs[1].Row["address"])
	assert.Equal(t, 4, recs[1].Line)
}

func TestDecodeCSV_BOMAndHeaderWhitespace(t *testing.T) {
	in := "\uFEFFplatform_name , extra\nNequi,x\n"

	recs, err := DecodeCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Nequi", recs[0].Row["platform_name"])
	assert.Equal(t, "x", recs[0].Row["extra"])
}

func TestDecodeCSV_ShortRowsFillEmpty(t *testing.T) {
	in := "a,b,c\n1\n1,2,3,4\n"

	recs, err := DecodeCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, Row{"a": "1", "b": "", "c": ""}, recs[0].Row)
	assert.Equal(t, Row{"a": "1", "b": "2", "c": "3"}, recs[1].Row)
}

func TestDecodeCSV_Errors(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = DecodeCSV(strings.NewReader("a,b\n\"unterminated,1\n"))
	assert.Error(t, err)
}

func TestCollapseNewlines(t *testing.T) {
	assert.Equal(t, "Calle 1 Apto 2  Bogotá", CollapseNewlines("Calle 1\nApto 2\n\nBogotá"))
	assert.Equal(t, "no newline, here", CollapseNewlines("no newline, here"))
	assert.Equal(t, "tab\tkept\r", CollapseNewlines("tab\tkept\r"))
}
