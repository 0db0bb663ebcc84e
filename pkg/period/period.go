package period

import (
	"fmt"
	"time"
)

/*
PERIOD → arithmétique de mois calendaires sur un index entier.

L'index est year*12 + (month-1) : la distance entre deux mois est une
simple soustraction d'entiers, jamais une différence de dates (les mois
n'ont pas tous la même longueur).
*/

// Period identifie un mois calendaire par son index entier.
type Period int

// Of tronque un horodatage (interprété en UTC) à son mois calendaire.
func Of(t time.Time) Period {
	t = t.UTC()
	return Period(t.Year()*12 + int(t.Month()) - 1)
}

// Parse("MMYYYY") -> Period du mois correspondant
func Parse(mmyyyy string) (Period, error) {
	if len(mmyyyy) != 6 {
		return 0, fmt.Errorf("format attendu MMYYYY (ex: 012024)")
	}
	for i := 0; i < 6; i++ {
		if mmyyyy[i] < '0' || mmyyyy[i] > '9' {
			return 0, fmt.Errorf("format attendu MMYYYY (ex: 012024)")
		}
	}
	month := int(mmyyyy[0]-'0')*10 + int(mmyyyy[1]-'0')
	year := int(mmyyyy[2]-'0')*1000 + int(mmyyyy[3]-'0')*100 + int(mmyyyy[4]-'0')*10 + int(mmyyyy[5]-'0')
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("mois invalide")
	}
	return Period(year*12 + month - 1), nil
}

// RangeInclusive liste les mois de start à end inclus, dans l'ordre.
func RangeInclusive(start, end Period) []Period {
	if end < start {
		return nil
	}
	out := make([]Period, 0, int(end-start)+1)
	for p := start; p <= end; p++ {
		out = append(out, p)
	}
	return out
}

// Year retourne l'année du mois.
func (p Period) Year() int {
	return int(p) / 12
}

// Month retourne le mois de l'année (1..12).
func (p Period) Month() time.Month {
	return time.Month(int(p)%12 + 1)
}

// Sub compte les frontières de mois entre p et q (p - q).
func (p Period) Sub(q Period) int {
	return int(p - q)
}

// Time retourne le 1er jour du mois, minuit UTC.
func (p Period) Time() time.Time {
	return time.Date(p.Year(), p.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// String formate le mois en "MM/YYYY".
func (p Period) String() string {
	return fmt.Sprintf("%02d/%04d", int(p.Month()), p.Year())
}
