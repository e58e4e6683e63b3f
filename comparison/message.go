package comparison

import (
	"fmt"
	"math"
)

// IdleMessage is shown while nothing is selected.
func IdleMessage(reference string) string {
	return fmt.Sprintf("Click any country to compare its size with %s", reference)
}

func NoDataMessage(country string) string {
	if country == "" {
		country = "this country"
	}
	return fmt.Sprintf("No area data available for %s", country)
}

func ErrorMessage(country string) string {
	if country == "" {
		country = "this country"
	}
	return fmt.Sprintf("Error comparing with %s", country)
}

// RatioMessage words 'ratio' (reference area / country area) with one
// decimal. Anything that is not a positive finite ratio reads as no data.
func RatioMessage(reference, country string, ratio float64) string {
	if country == "" || math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return NoDataMessage(country)
	}
	if ratio > 1 {
		return fmt.Sprintf("%s is %.1f times bigger than %s", reference, ratio, country)
	}
	return fmt.Sprintf("%s is %.1f times smaller than %s", reference, 1/ratio, country)
}
