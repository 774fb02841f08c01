package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

func TestParseTicketTrain(t *testing.T) {
	text := "IRCTC Electronic Reservation Slip (ERS)\n" +
		"PNR No: 4521367890    Train No./Name: 12921 / FLYING RANEE\n" +
		"Date of Journey: 15-Jan-2025\n" +
		"From: NAVSARI (NVS)    Boarding At: NAVSARI (NVS)\n" +
		"To: MUMBAI CENTRAL (MMCT)\n" +
		"Class: SECOND SITTING (2S)\n"

	ext := ParseTicket(text)

	assert.Equal(t, dto.DocTypeTicket, ext.Type)
	require.NotNil(t, ext.Ticket)
	assert.Equal(t, "4521367890", ext.Ticket.PNR)
	assert.Equal(t, "15/01/2025", ext.Ticket.JourneyDate)
	assert.Equal(t, "NAVSARI (NVS)", ext.Ticket.From)
	assert.Equal(t, "MUMBAI CENTRAL (MMCT)", ext.Ticket.To)
	assert.Equal(t, "Train", ext.Ticket.Mode)
}

func TestParseTicketBus(t *testing.T) {
	ext := ParseTicket("GSRTC e-Ticket\nPNR: AB12CD34\nJourney Date: 03/02/2025\nFrom: Navsari\nTo: Anand")

	require.NotNil(t, ext.Ticket)
	assert.Equal(t, "AB12CD34", ext.Ticket.PNR)
	assert.Equal(t, "03/02/2025", ext.Ticket.JourneyDate)
	assert.Equal(t, "Bus", ext.Ticket.Mode)
}

func TestTicketModeIgnoresEmbeddedMarkers(t *testing.T) {
	assert.Equal(t, "", ticketMode("business meeting"))
	assert.Equal(t, "Air", ticketMode("IndiGo boarding pass"))
}
