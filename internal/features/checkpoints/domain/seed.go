package domain

import "time"

// DefaultCorridor returns the Mombasa–Kampala northern corridor checkpoints
// used to seed an empty registry store. Administrators adjust the taxonomy
// afterwards through the checkpoint endpoints.
func DefaultCorridor() []Checkpoint {
	now := time.Now()
	cp := func(name string, order int, country Country, major bool, aliases ...string) Checkpoint {
		return Checkpoint{
			Name:             name,
			DisplayName:      name,
			Order:            order,
			Country:          country,
			IsActive:         true,
			IsMajor:          major,
			AlternativeNames: aliases,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
	}

	list := []Checkpoint{
		cp("MOMBASA PORT", 1, CountryKenya, true, "MOMBASA", "MSA", "PORT"),
		cp("MARIAKANI", 2, CountryKenya, false),
		cp("VOI", 3, CountryKenya, false),
		cp("MTITO ANDEI", 4, CountryKenya, false, "MTITO"),
		cp("NAIROBI", 5, CountryKenya, true, "NBO", "NRB"),
		cp("NAIVASHA", 6, CountryKenya, false),
		cp("NAKURU", 7, CountryKenya, false),
		cp("ELDORET", 8, CountryKenya, true, "ELD"),
		cp("WEBUYE", 9, CountryKenya, false),
		cp("MALABA", 10, CountryKenya, true, "MALABA BORDER"),
		cp("BUSIA", 11, CountryKenya, false, "BUSIA BORDER"),
		cp("TORORO", 12, CountryUganda, false),
		cp("JINJA", 13, CountryUganda, false),
		cp("KAMPALA", 14, CountryUganda, true, "KLA"),
	}

	regions := map[string]string{
		"MOMBASA PORT": "COAST", "MARIAKANI": "COAST", "VOI": "COAST",
		"MTITO ANDEI": "EASTERN", "NAIROBI": "NAIROBI",
		"NAIVASHA": "RIFT VALLEY", "NAKURU": "RIFT VALLEY", "ELDORET": "RIFT VALLEY",
		"WEBUYE": "WESTERN", "MALABA": "WESTERN", "BUSIA": "WESTERN",
		"TORORO": "EASTERN UG", "JINJA": "EASTERN UG", "KAMPALA": "CENTRAL UG",
	}
	distances := map[string]float64{
		"MOMBASA PORT": 0, "MARIAKANI": 36, "VOI": 160, "MTITO ANDEI": 290,
		"NAIROBI": 490, "NAIVASHA": 580, "NAKURU": 660, "ELDORET": 810,
		"WEBUYE": 870, "MALABA": 930, "BUSIA": 950, "TORORO": 946,
		"JINJA": 1060, "KAMPALA": 1140,
	}
	fuel := map[string]bool{
		"MOMBASA PORT": true, "VOI": true, "MTITO ANDEI": true, "NAIROBI": true,
		"NAKURU": true, "ELDORET": true, "KAMPALA": true,
	}

	for i := range list {
		list[i].Region = regions[list[i].Name]
		list[i].EstimatedDistanceFromStartKm = distances[list[i].Name]
		list[i].FuelAvailable = fuel[list[i].Name]
		list[i].BorderCrossing = list[i].Name == "MALABA" || list[i].Name == "BUSIA"
	}
	return list
}
