package utils

import (
	"errors"
	"testing"

	"github.com/Aashish23092/tour-diary-generator/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayLevelForBasic(t *testing.T) {
	assert.Equal(t, "Level 12+", PayLevelForBasic(80000))
	assert.Equal(t, "Level 6-11", PayLevelForBasic(40000))
	assert.Equal(t, "Level 1-5", PayLevelForBasic(20000))

	assert.Equal(t, "Level 12+", PayLevelForBasic(78800))
	assert.Equal(t, "Level 6-11", PayLevelForBasic(35400))
	assert.Equal(t, "Level 1-5", PayLevelForBasic(0))
}

func TestPayLevelForBasicIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, PayLevelForBasic(40000), PayLevelForBasic(40000))
	}
}

func TestEmployeePayLevelPrefersExplicitLevel(t *testing.T) {
	assert.Equal(t, "Level 12+", EmployeePayLevel(dto.Employee{PayLevel: 13, BasicPay: 20000}))
	assert.Equal(t, "Level 6-11", EmployeePayLevel(dto.Employee{BasicPay: 40000}))
}

func TestDailyAllowance(t *testing.T) {
	amount, err := DailyAllowance("Level 6-11", "Y")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(500)))

	amount, err = DailyAllowance("Level 12+", "x")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(1000)))

	_, err = DailyAllowance("Level 99", "Y")
	assert.True(t, errors.Is(err, dto.ErrUnknownPayLevel))

	_, err = DailyAllowance("Level 1-5", "Q")
	assert.True(t, errors.Is(err, dto.ErrUnknownCityClass))
}

func TestCityClass(t *testing.T) {
	assert.Equal(t, "X", CityClass("Ahmedabad"))
	assert.Equal(t, "Y", CityClass("  surat "))
	assert.Equal(t, "Y", CityClass("Anand Road, Vadodara"))
	assert.Equal(t, "Z", CityClass("NAU, Navsari"))
	assert.Equal(t, "Z", CityClass(""))
}

func TestDailyAllowanceForCity(t *testing.T) {
	amount, class, err := DailyAllowanceForCity("Level 1-5", "Mumbai")
	require.NoError(t, err)
	assert.Equal(t, "X", class)
	assert.True(t, amount.Equal(decimal.NewFromInt(450)))
}

func TestAllowanceTableOrder(t *testing.T) {
	rows := AllowanceTable()
	require.Len(t, rows, 3)
	assert.Equal(t, "Level 12+", rows[0].PayLevel)
	assert.Equal(t, "Level 1-5", rows[2].PayLevel)
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "500.00", FormatINR(decimal.NewFromInt(500)))
	assert.Equal(t, "1,500.00", FormatINR(decimal.NewFromInt(1500)))
	assert.Equal(t, "1,23,456.50", FormatINR(decimal.NewFromFloat(123456.5)))
	assert.Equal(t, "-12,34,567.00", FormatINR(decimal.NewFromInt(-1234567)))
}
