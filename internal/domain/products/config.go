package products

// CatalogRules holds the immutable validation data loaded once at startup
// and injected into the batch validator: the known brand/model pairs and the
// iPhone carton quality sets.
type CatalogRules struct {
	// Models maps a brand to its accepted model names. A brand absent from
	// the map is unknown; an empty slice accepts any model for that brand.
	Models map[string][]string

	// CartonQualities are the accepted qualities for iPhone CARTON units.
	CartonQualities []string

	// ArrivageQualities are the accepted qualities for iPhone ARRIVAGE units.
	ArrivageQualities []string
}

// DefaultCatalogRules returns the built-in catalog accepted by file import.
func DefaultCatalogRules() CatalogRules {
	return CatalogRules{
		Models: map[string][]string{
			"iPhone": {
				"SE 2022", "X", "XR", "XS", "XS MAX", "11 SIMPLE", "11 PRO", "11 PRO MAX",
				"12 SIMPLE", "12 MINI", "12 PRO", "12 PRO MAX",
				"13 SIMPLE", "13 MINI", "13 PRO", "13 PRO MAX",
				"14 SIMPLE", "14 PLUS", "14 PRO", "14 PRO MAX",
				"15 SIMPLE", "15 PLUS", "15 PRO", "15 PRO MAX",
				"16 SIMPLE", "16e", "16 PLUS", "16 PRO", "16 PRO MAX",
				"17 SIMPLE", "17 AIR", "17 PRO", "17 PRO MAX",
			},
			"Samsung": {"Galaxy S21", "Galaxy S22", "Galaxy A14", "Galaxy Note 20", "Galaxy A54", "Galaxy A36"},
			"iPad":    {"Air 10éme Gen", "Air 11éme Gen", "Pro", "Mini"},
			"AirPod":  {"1ère Gen", "2ème Gen", "3ème Gen", "4ème Gen", "Pro 1ème Gen", "Pro 2ème Gen"},
			"Google":  {"PIXEL 8 PRO"},
			"APPLE":   {"WATCH 09 41mm", "WATCH 10 41mm", "WATCH 10 46mm", "WATCH 11 41mm"},
			"MacBook": {"Air M1 13 2020", "Air M1 15 2020", "Air M2 13 2020", "Air 15 M2 2020", "Air M2 2020", "Air M1 2020", "Pro"},
		},
		CartonQualities:   []string{"GW", "ORG", "ACTIVE", "NO ACTIVE", "ESIM ACTIVE", "ESIM NO ACTIVE"},
		ArrivageQualities: []string{"SM", "MSG"},
	}
}

// KnownBrand reports whether the brand appears in the catalog.
func (r CatalogRules) KnownBrand(brand string) bool {
	_, ok := r.Models[brand]
	return ok
}

// KnownModel reports whether the model is accepted for the brand.
func (r CatalogRules) KnownModel(brand, model string) bool {
	models, ok := r.Models[brand]
	if !ok {
		return false
	}
	if len(models) == 0 {
		return true
	}
	for _, m := range models {
		if m == model {
			return true
		}
	}
	return false
}

// ValidCartonQuality reports whether quality is accepted for iPhone CARTON.
func (r CatalogRules) ValidCartonQuality(quality string) bool {
	return contains(r.CartonQualities, quality)
}

// ValidArrivageQuality reports whether quality is accepted for iPhone ARRIVAGE.
func (r CatalogRules) ValidArrivageQuality(quality string) bool {
	return contains(r.ArrivageQualities, quality)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
