package catalogsync

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSheet = `name,description,original_price,image_url,stock,retail_price,wholesaler_price
Widget,A widget,100,https://img/w.png,5,90,80
Gadget,A gadget,50,,3,45,40
`

func TestParseRecords(t *testing.T) {
	t.Run("parses well-formed sheet", func(t *testing.T) {
		records, err := ParseRecords([]byte(sampleSheet))
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "Widget", records[0].Name)
		assert.Equal(t, "A widget", records[0].Description)
		assert.Equal(t, "100", records[0].OriginalPrice)
		assert.Equal(t, "5", records[0].Stock)
		assert.Equal(t, "90", records[0].RetailPrice)
		assert.Equal(t, "80", records[0].WholesalerPrice)

		assert.Equal(t, "", records[1].ImageURL, "missing cell normalizes to empty")
	})

	t.Run("reports missing required columns", func(t *testing.T) {
		_, err := ParseRecords([]byte("name,stock\nWidget,5\n"))
		require.Error(t, err)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Error(), "missing columns")
		assert.Contains(t, parseErr.Error(), "retail_price")
	})

	t.Run("rejects undecodable document", func(t *testing.T) {
		_, err := ParseRecords([]byte{0xFF, 0xFE, 0x00, 0x01})
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("rejects empty document", func(t *testing.T) {
		_, err := ParseRecords(nil)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("malformed numeric cells still parse", func(t *testing.T) {
		sheet := strings.Replace(sampleSheet, "Widget,A widget,100", "Widget,A widget,abc", 1)
		records, err := ParseRecords([]byte(sheet))
		require.NoError(t, err, "coercion is the reconciler's job")
		assert.Equal(t, "abc", records[0].OriginalPrice)
	})

	t.Run("extra columns are ignored", func(t *testing.T) {
		sheet := `name,description,original_price,image_url,stock,retail_price,wholesaler_price,extra
Widget,d,1,u,1,1,1,surprise
`
		records, err := ParseRecords([]byte(sheet))
		require.NoError(t, err)
		require.Len(t, records, 1)
	})
}
