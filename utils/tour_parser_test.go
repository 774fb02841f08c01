package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

func TestParseTourApprovalRows(t *testing.T) {
	text := "ONLINE TOUR MANAGEMENT SYSTEM\n" +
		"System No: 21781756377236\n" +
		"Name of Employee: Ravi Patel\n" +
		"Designation: Assistant Professor\n" +
		"B.H. 303/2092\n" +
		"Purpose of Tour: Training on IPM\n" +
		"15/01/2025 08:00 NAU, Navsari 15/01/2025 10:30 Surat    Private Vehicle\n" +
		"16/1/2025 9.15 Surat 16/01/2025 11:45 NAU, Navsari\n"

	ext := ParseTourApproval(text)

	assert.Equal(t, dto.DocTypeTourApproval, ext.Type)
	assert.Equal(t, "21781756377236", ext.SystemNo)
	require.NotNil(t, ext.UserDetails)
	assert.Equal(t, "Ravi Patel", ext.UserDetails.Name)
	assert.Equal(t, "Assistant Professor", ext.UserDetails.Designation)
	assert.Equal(t, "303/2092", ext.UserDetails.BudgetHead)

	require.Len(t, ext.Trips, 2)
	assert.Equal(t, "15/01/2025", ext.Trips[0].DepartureDate)
	assert.Equal(t, "08:00", ext.Trips[0].DepartureTime)
	assert.Equal(t, "NAU, Navsari", ext.Trips[0].DeparturePlace)
	assert.Equal(t, "Surat", ext.Trips[0].ArrivalPlace)
	assert.Equal(t, "Private Vehicle", ext.Trips[0].Mode)
	assert.Equal(t, "Training on IPM", ext.Trips[0].Purpose)

	assert.Equal(t, "16/01/2025", ext.Trips[1].DepartureDate)
	assert.Equal(t, "09:15", ext.Trips[1].DepartureTime)
	assert.Equal(t, "NAU, Navsari", ext.Trips[1].ArrivalPlace)
	assert.Equal(t, "Training on IPM", ext.Trips[1].Purpose)
}

func TestParseTourApprovalSingleSpacedColumns(t *testing.T) {
	text := "System No: 21781756377236\n" +
		"Name of Employee: Ravi Patel Designation: Assistant Professor\n" +
		"15/01/2025 08:00 NAU, Navsari 15/01/2025 10:30 Surat Private Vehicle\n" +
		"16/01/2025 09:00 Surat 16/01/2025 11:45 NAU, Navsari Bus\n"

	ext := ParseTourApproval(text)

	require.NotNil(t, ext.UserDetails)
	assert.Equal(t, "Ravi Patel", ext.UserDetails.Name)
	assert.Equal(t, "Assistant Professor", ext.UserDetails.Designation)

	require.Len(t, ext.Trips, 2)
	assert.Equal(t, "NAU, Navsari", ext.Trips[0].DeparturePlace)
	assert.Equal(t, "Surat", ext.Trips[0].ArrivalPlace)
	assert.Equal(t, "Private Vehicle", ext.Trips[0].Mode)
	assert.Equal(t, "Y", CityClass(ext.Trips[0].ArrivalPlace))
	assert.Equal(t, "NAU, Navsari", ext.Trips[1].ArrivalPlace)
	assert.Equal(t, "Bus", ext.Trips[1].Mode)
}

func TestParseTourApprovalLabelledTrip(t *testing.T) {
	text := `Tour ID 123456789012
From: Navsari
To: Anand
Departure Date: 03/02/2025   Departure Time: 07:30
Arrival Date: 03/02/2025   Arrival Time: 13:00
Mode of Journey: Bus
Purpose: Seed certification meeting
Distance: 215`

	ext := ParseTourApproval(text)

	assert.Equal(t, "123456789012", ext.SystemNo)
	assert.Nil(t, ext.UserDetails)
	require.Len(t, ext.Trips, 1)

	trip := ext.Trips[0]
	assert.Equal(t, "Navsari", trip.DeparturePlace)
	assert.Equal(t, "Anand", trip.ArrivalPlace)
	assert.Equal(t, "03/02/2025", trip.DepartureDate)
	assert.Equal(t, "07:30", trip.DepartureTime)
	assert.Equal(t, "13:00", trip.ArrivalTime)
	assert.Equal(t, "Bus", trip.Mode)
	assert.Equal(t, "Seed certification meeting", trip.Purpose)
	assert.Equal(t, 215.0, trip.DistanceKm.Float64())
}

func TestParseTourApprovalSystemNoFallback(t *testing.T) {
	ext := ParseTourApproval("barcode\n21781756377236\nref 1234")

	assert.Equal(t, "21781756377236", ext.SystemNo)
	assert.Empty(t, ext.Trips)
}
