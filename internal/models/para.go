package models

import (
	"math"
	"strconv"
)

// Parasal değerler içeride int64 kuruş olarak tutulur; tekrarlanan
// yükleme/düşme işlemlerinde float kayması olmaz. TL yalnızca API sınırında.

func LiraToKurus(lira float64) int64 {
	return int64(math.Round(lira * 100))
}

func KurusToLira(kurus int64) float64 {
	return float64(kurus) / 100
}

func KurusToLiraStr(kurus int64) string {
	return strconv.FormatFloat(KurusToLira(kurus), 'f', 2, 64)
}
