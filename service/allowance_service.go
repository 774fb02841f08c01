package service

import (
	"log"

	"github.com/shopspring/decimal"

	"github.com/Aashish23092/tour-diary-generator/dto"
	"github.com/Aashish23092/tour-diary-generator/utils"
)

type AllowanceService struct{}

func NewAllowanceService() *AllowanceService {
	return &AllowanceService{}
}

// Compute returns one daily allowance line per trip, priced by the arrival
// city. A trip is charged for every calendar day from departure to arrival,
// and at least one day when either date is missing.
func (s *AllowanceService) Compute(emp dto.Employee, trips []dto.Trip) ([]dto.AllowanceLine, decimal.Decimal, string) {
	level := utils.EmployeePayLevel(emp)
	total := decimal.Zero
	lines := make([]dto.AllowanceLine, 0, len(trips))

	for i, trip := range trips {
		rate, class, err := utils.DailyAllowanceForCity(level, trip.ArrivalPlace)
		if err != nil {
			log.Printf("allowance lookup failed for trip %d: %v", i+1, err)
			continue
		}

		days := tripDays(trip)
		amount := rate.Mul(decimal.NewFromInt(int64(days)))
		total = total.Add(amount)

		lines = append(lines, dto.AllowanceLine{
			TripIndex: i,
			City:      trip.ArrivalPlace,
			CityClass: class,
			PayLevel:  level,
			Rate:      rate,
			Days:      days,
			Amount:    amount,
		})
	}

	return lines, total, level
}

// Lookup prices a single city for a pay level given as a basic pay or a
// pay-matrix level number; level wins when both are set.
func (s *AllowanceService) Lookup(basic float64, payLevel int, city string) (*dto.AllowanceResponse, error) {
	level := utils.EmployeePayLevel(dto.Employee{BasicPay: dto.FlexFloat(basic), PayLevel: dto.FlexInt(payLevel)})

	amount, class, err := utils.DailyAllowanceForCity(level, city)
	if err != nil {
		return nil, err
	}

	return &dto.AllowanceResponse{
		City:      city,
		CityClass: class,
		PayLevel:  level,
		Amount:    amount,
	}, nil
}

func tripDays(trip dto.Trip) int {
	dep, err := utils.ParseDate(trip.DepartureDate)
	if err != nil {
		return 1
	}
	arr, err := utils.ParseDate(trip.ArrivalDate)
	if err != nil || arr.Before(dep) {
		return 1
	}
	return int(arr.Sub(dep).Hours()/24) + 1
}
