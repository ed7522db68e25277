package recordtext

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabeled(t *testing.T) {
	t.Run("parses dash-separated sections", func(t *testing.T) {
		input := `
Nome: Carlos Eduardo
Bairro: Guamá
NDS: NDS123456
Valor: R$ 45,00
Vencimento: 10/03/2025
-----
Nome: Maria José
Bairro: Pedreira
NDS: NDS654321
Cartão: SC-009
Valor: 89,90
Vencimento: 15/03/2025
`
		records := ParseLabeled(input, Defaults{})

		require.Len(t, records, 2)
		assert.Equal(t, "Carlos Eduardo", records[0].Name)
		assert.Equal(t, "Guamá", records[0].Neighborhood)
		assert.Equal(t, "NDS123456", records[0].EquipmentCode)
		assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("45")))
		assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), records[0].DueDate)
		assert.Equal(t, 1, records[0].Section)

		assert.Equal(t, "Maria José", records[1].Name)
		assert.Equal(t, "SC-009", records[1].SmartCard)
		assert.True(t, records[1].Amount.Equal(decimal.RequireFromString("89.9")))
		assert.Equal(t, 2, records[1].Section)
	})

	t.Run("marker glyph opens a new section", func(t *testing.T) {
		input := "➡ Nome: Carlos Eduardo\nNDS: A1\nValor: 45,00\nVencimento: 10/03/2025\n" +
			"➡ Nome: Maria José\nNDS: B2\nValor: 45,00\nVencimento: 10/03/2025\n"

		records := ParseLabeled(input, Defaults{})

		require.Len(t, records, 2)
		assert.Equal(t, "Carlos Eduardo", records[0].Name)
		assert.Equal(t, "Maria José", records[1].Name)
	})

	t.Run("strips bullets and emoji before label matching", func(t *testing.T) {
		input := "🔹 Nome: Carlos Eduardo\n• NDS: A1\n- Valor: 45,00\n* Vencimento: 10/03/2025\n"

		records := ParseLabeled(input, Defaults{})

		require.Len(t, records, 1)
		assert.Equal(t, "Carlos Eduardo", records[0].Name)
		assert.Equal(t, "A1", records[0].EquipmentCode)
	})

	t.Run("incomplete sections are silently dropped", func(t *testing.T) {
		input := `
Nome: Carlos Eduardo
NDS: A1
Valor: 45,00
Vencimento: 10/03/2025
-----
Nome: Sem Decoder
Valor: 45,00
Vencimento: 10/03/2025
-----
NDS: B2
Valor: 45,00
Vencimento: 10/03/2025
`
		records := ParseLabeled(input, Defaults{})

		require.Len(t, records, 1)
		assert.Equal(t, "Carlos Eduardo", records[0].Name)
	})

	t.Run("defaults fill missing billing fields", func(t *testing.T) {
		input := "Nome: Carlos Eduardo\nNDS: A1\n"
		defaults := Defaults{
			Amount:     decimal.NewFromInt(45),
			DueDate:    time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			ChargeType: "aluguel",
		}

		records := ParseLabeled(input, defaults)

		require.Len(t, records, 1)
		assert.True(t, records[0].Amount.Equal(decimal.NewFromInt(45)))
		assert.Equal(t, "aluguel", records[0].ChargeType)
	})

	t.Run("unknown labels are ignored", func(t *testing.T) {
		input := "Nome: Carlos\nObservação: manda mensagem antes\nNDS: A1\nValor: 45,00\nVencimento: 10/03/2025\n"

		records := ParseLabeled(input, Defaults{})

		require.Len(t, records, 1)
	})

	t.Run("empty input yields no candidates", func(t *testing.T) {
		assert.Empty(t, ParseLabeled("", Defaults{}))
		assert.Empty(t, ParseLabeled("\n\n-----\n\n", Defaults{}))
	})

	t.Run("subscription code and charge type are captured", func(t *testing.T) {
		input := "Nome: Carlos Eduardo\nNDS: A1\nPlano: TOP-HD\nTipo: mensalidade\nValor: 45,00\nVencimento: 10/03/2025\n"

		records := ParseLabeled(input, Defaults{})

		require.Len(t, records, 1)
		assert.Equal(t, "TOP-HD", records[0].SubscriptionCode)
		assert.Equal(t, "mensalidade", records[0].ChargeType)
	})
}
