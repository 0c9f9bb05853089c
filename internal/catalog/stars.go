package catalog

// starRow is a bright-star table entry. RA is in degrees as published in
// the Yale Bright Star Catalog; BrightStars converts it to hours.
type starRow struct {
	name, designation, con string
	raDeg, decDeg, mag     float64
	aliases                []string
}

// BrightStars returns named stars brighter than about magnitude 4.7, J2000,
// brightest first.
func BrightStars() []Object {
	out := make([]Object, len(brightStars))
	for i, s := range brightStars {
		out[i] = Object{
			ID:            s.name,
			Name:          s.name,
			Designation:   s.designation,
			Aliases:       s.aliases,
			Kind:          KindStar,
			Constellation: s.con,
			RAHours:       s.raDeg / 15,
			DecDeg:        s.decDeg,
			Mag:           s.mag,
		}
	}
	return out
}

var brightStars = []starRow{
	{"Sirius", "α CMa", "CMa", 101.287, -16.716, -1.46, []string{"Dog Star", "alpha CMa"}},
	{"Canopus", "α Car", "Car", 95.988, -52.696, -0.74, nil},
	{"Arcturus", "α Boo", "Boo", 213.915, 19.182, -0.05, nil},
	{"Vega", "α Lyr", "Lyr", 279.235, 38.784, 0.03, []string{"alpha Lyr"}},
	{"Capella", "α Aur", "Aur", 79.172, 45.998, 0.08, nil},
	{"Rigel", "β Ori", "Ori", 78.634, -8.202, 0.13, nil},
	{"Procyon", "α CMi", "CMi", 114.826, 5.225, 0.34, nil},
	{"Achernar", "α Eri", "Eri", 24.429, -57.237, 0.46, nil},
	{"Betelgeuse", "α Ori", "Ori", 88.793, 7.407, 0.50, []string{"alpha Ori"}},
	{"Hadar", "β Cen", "Cen", 210.956, -60.373, 0.61, []string{"Agena"}},
	{"Altair", "α Aql", "Aql", 297.696, 8.868, 0.76, nil},
	{"Acrux", "α Cru", "Cru", 186.650, -63.099, 0.76, nil},
	{"Aldebaran", "α Tau", "Tau", 68.980, 16.509, 0.85, nil},
	{"Antares", "α Sco", "Sco", 247.352, -26.432, 0.96, nil},
	{"Spica", "α Vir", "Vir", 201.298, -11.161, 0.97, nil},
	{"Pollux", "β Gem", "Gem", 116.329, 28.026, 1.14, nil},
	{"Fomalhaut", "α PsA", "PsA", 344.413, -29.622, 1.16, nil},
	{"Deneb", "α Cyg", "Cyg", 310.358, 45.280, 1.25, nil},
	{"Mimosa", "β Cru", "Cru", 191.930, -59.689, 1.25, nil},
	{"Regulus", "α Leo", "Leo", 152.093, 11.967, 1.35, nil},
	{"Adhara", "ε CMa", "CMa", 104.656, -28.972, 1.50, nil},
	{"Castor", "α Gem", "Gem", 113.650, 31.889, 1.58, nil},
	{"Gacrux", "γ Cru", "Cru", 187.791, -57.113, 1.63, nil},
	{"Shaula", "λ Sco", "Sco", 263.402, -37.104, 1.63, nil},
	{"Bellatrix", "γ Ori", "Ori", 81.283, 6.350, 1.64, nil},
	{"Elnath", "β Tau", "Tau", 81.573, 28.608, 1.65, nil},
	{"Miaplacidus", "β Car", "Car", 138.300, -69.717, 1.68, nil},
	{"Alnilam", "ε Ori", "Ori", 84.053, -1.202, 1.69, nil},
	{"Alnair", "α Gru", "Gru", 332.058, -46.961, 1.74, nil},
	{"Alnitak", "ζ Ori", "Ori", 85.190, -1.943, 1.77, nil},
	{"Alioth", "ε UMa", "UMa", 193.507, 55.960, 1.77, nil},
	{"Dubhe", "α UMa", "UMa", 165.932, 61.751, 1.79, nil},
	{"Mirfak", "α Per", "Per", 51.081, 49.861, 1.79, nil},
	{"Wezen", "δ CMa", "CMa", 107.098, -26.393, 1.84, nil},
	{"Kaus Australis", "ε Sgr", "Sgr", 276.043, -34.384, 1.85, nil},
	{"Avior", "ε Car", "Car", 125.629, -59.509, 1.86, nil},
	{"Alkaid", "η UMa", "UMa", 206.885, 49.313, 1.86, []string{"Benetnasch"}},
	{"Sargas", "θ Sco", "Sco", 264.330, -42.998, 1.87, nil},
	{"Menkalinan", "β Aur", "Aur", 89.882, 44.948, 1.90, nil},
	{"Atria", "α TrA", "TrA", 252.166, -69.028, 1.92, nil},
	{"Alhena", "γ Gem", "Gem", 99.428, 16.399, 1.93, nil},
	{"Peacock", "α Pav", "Pav", 306.412, -56.735, 1.94, nil},
	{"Alsephina", "δ Vel", "Vel", 131.176, -54.709, 1.96, nil},
	{"Mirzam", "β CMa", "CMa", 95.675, -17.956, 1.98, nil},
	{"Alphard", "α Hya", "Hya", 141.897, -8.659, 2.00, nil},
	{"Hamal", "α Ari", "Ari", 31.793, 23.463, 2.00, nil},
	{"Polaris", "α UMi", "UMi", 37.954, 89.264, 2.02, []string{"North Star", "Pole Star"}},
	{"Diphda", "β Cet", "Cet", 10.897, -17.987, 2.02, []string{"Deneb Kaitos"}},
	{"Nunki", "σ Sgr", "Sgr", 283.816, -26.297, 2.02, nil},
	{"Mizar", "ζ UMa", "UMa", 200.981, 54.925, 2.04, nil},
	{"Mirach", "β And", "And", 17.433, 35.621, 2.05, nil},
	{"Alpheratz", "α And", "And", 2.097, 29.091, 2.06, nil},
	{"Menkent", "θ Cen", "Cen", 211.671, -36.370, 2.06, nil},
	{"Algieba", "γ Leo", "Leo", 154.993, 19.842, 2.08, nil},
	{"Kochab", "β UMi", "UMi", 222.676, 74.156, 2.08, nil},
	{"Rasalhague", "α Oph", "Oph", 263.734, 12.560, 2.08, nil},
	{"Saiph", "κ Ori", "Ori", 86.939, -9.670, 2.09, nil},
	{"Algol", "β Per", "Per", 47.042, 40.957, 2.12, []string{"Demon Star"}},
	{"Denebola", "β Leo", "Leo", 177.265, 14.572, 2.13, nil},
	{"Muhlifain", "γ Cen", "Cen", 190.379, -48.960, 2.17, nil},
	{"Suhail", "λ Vel", "Vel", 136.999, -43.433, 2.21, nil},
	{"Alphecca", "α CrB", "CrB", 233.672, 26.715, 2.23, []string{"Gemma"}},
	{"Mintaka", "δ Ori", "Ori", 83.002, -0.299, 2.23, nil},
	{"Sadr", "γ Cyg", "Cyg", 305.557, 40.257, 2.23, nil},
	{"Eltanin", "γ Dra", "Dra", 269.152, 51.489, 2.23, nil},
	{"Schedar", "α Cas", "Cas", 10.127, 56.537, 2.23, nil},
	{"Naos", "ζ Pup", "Pup", 120.896, -40.003, 2.25, nil},
	{"Aspidiske", "ι Car", "Car", 139.273, -59.275, 2.25, nil},
	{"Caph", "β Cas", "Cas", 2.295, 59.150, 2.27, nil},
	{"Larawag", "ε Sco", "Sco", 252.541, -34.293, 2.29, nil},
	{"Dschubba", "δ Sco", "Sco", 240.083, -22.622, 2.32, nil},
	{"Merak", "β UMa", "UMa", 165.460, 56.382, 2.37, nil},
	{"Izar", "ε Boo", "Boo", 221.247, 27.074, 2.37, nil},
	{"Ankaa", "α Phe", "Phe", 6.571, -42.306, 2.38, nil},
	{"Enif", "ε Peg", "Peg", 326.046, 9.875, 2.39, nil},
	{"Girtab", "κ Sco", "Sco", 265.622, -39.030, 2.41, nil},
	{"Scheat", "β Peg", "Peg", 345.944, 28.083, 2.42, nil},
	{"Sabik", "η Oph", "Oph", 257.595, -15.725, 2.43, nil},
	{"Phecda", "γ UMa", "UMa", 178.458, 53.695, 2.44, nil},
	{"Aludra", "η CMa", "CMa", 111.024, -29.303, 2.45, nil},
	{"Markeb", "κ Vel", "Vel", 140.528, -55.011, 2.47, nil},
	{"Navi", "γ Cas", "Cas", 14.177, 60.717, 2.47, nil},
	{"Aljanah", "ε Cyg", "Cyg", 311.553, 33.970, 2.48, nil},
	{"Markab", "α Peg", "Peg", 346.190, 15.205, 2.49, nil},
	{"Alderamin", "α Cep", "Cep", 319.645, 62.586, 2.51, nil},
	{"Zosma", "δ Leo", "Leo", 168.527, 20.524, 2.56, nil},
	{"Arneb", "α Lep", "Lep", 83.183, -17.822, 2.58, nil},
	{"Gienah", "γ Crv", "Crv", 183.952, -17.542, 2.59, nil},
	{"Zubeneschamali", "β Lib", "Lib", 229.252, -9.383, 2.61, nil},
	{"Acrab", "β Sco", "Sco", 241.359, -19.805, 2.62, nil},
	{"Sheratan", "β Ari", "Ari", 28.660, 20.808, 2.64, nil},
	{"Phact", "α Col", "Col", 84.912, -34.074, 2.64, nil},
	{"Unukalhai", "α Ser", "Ser", 236.067, 6.426, 2.65, nil},
	{"Kraz", "β Crv", "Crv", 188.597, -23.397, 2.65, nil},
	{"Hassaleh", "ι Aur", "Aur", 74.248, 33.166, 2.69, nil},
	{"Tarazed", "γ Aql", "Aql", 296.565, 10.613, 2.72, nil},
	{"Porrima", "γ Vir", "Vir", 190.415, -1.449, 2.74, nil},
	{"Yed Prior", "δ Oph", "Oph", 243.586, -3.694, 2.75, nil},
	{"Zubenelgenubi", "α Lib", "Lib", 222.720, -16.042, 2.75, nil},
	{"Rastaban", "β Dra", "Dra", 262.608, 52.301, 2.79, nil},
	{"Cursa", "β Eri", "Eri", 76.963, -5.086, 2.79, nil},
	{"Cor Caroli", "α CVn", "CVn", 194.007, 38.318, 2.81, nil},
	{"Vindemiatrix", "ε Vir", "Vir", 195.544, 10.959, 2.83, nil},
	{"Nihal", "β Lep", "Lep", 82.061, -20.759, 2.84, nil},
	{"Alcyone", "η Tau", "Tau", 56.871, 24.105, 2.87, nil},
	{"Tejat", "μ Gem", "Gem", 95.740, 22.513, 2.88, nil},
	{"Gomeisa", "β CMi", "CMi", 111.788, 8.289, 2.90, nil},
	{"Sadalsuud", "β Aqr", "Aqr", 322.890, -5.571, 2.91, nil},
	{"Algorab", "δ Crv", "Crv", 187.466, -16.515, 2.95, nil},
	{"Sadalmelik", "α Aqr", "Aqr", 331.446, -0.320, 2.96, nil},
	{"Pherkad", "γ UMi", "UMi", 230.182, 71.834, 3.00, nil},
	{"Minkar", "ε Crv", "Crv", 182.531, -22.620, 3.02, nil},
	{"Tania Australis", "μ UMa", "UMa", 155.582, 41.499, 3.05, nil},
	{"Mebsuta", "ε Gem", "Gem", 100.983, 25.131, 3.06, nil},
	{"Aldhibah", "ζ Dra", "Dra", 257.197, 65.715, 3.17, nil},
	{"Albireo", "β Cyg", "Cyg", 292.680, 27.960, 3.18, nil},
	{"Propus", "η Gem", "Gem", 93.719, 22.506, 3.28, nil},
	{"Edasich", "ι Dra", "Dra", 231.232, 58.966, 3.29, nil},
	{"Megrez", "δ UMa", "UMa", 183.857, 57.033, 3.31, nil},
	{"Chertan", "θ Leo", "Leo", 168.560, 15.430, 3.33, nil},
	{"Heze", "ζ Vir", "Vir", 203.673, -0.596, 3.37, nil},
	{"Auva", "δ Vir", "Vir", 193.901, 3.397, 3.38, nil},
	{"Adhafera", "ζ Leo", "Leo", 154.173, 23.417, 3.43, nil},
	{"Tania Borealis", "λ UMa", "UMa", 154.274, 42.914, 3.45, nil},
	{"Alula Borealis", "ν UMa", "UMa", 169.620, 33.094, 3.49, nil},
	{"Subra", "ο Leo", "Leo", 145.288, 9.893, 3.52, nil},
	{"Wasat", "δ Gem", "Gem", 110.031, 21.982, 3.53, nil},
	{"Zavijava", "β Vir", "Vir", 177.674, 1.765, 3.61, nil},
	{"Thuban", "α Dra", "Dra", 211.097, 64.376, 3.65, nil},
	{"Alshain", "β Aql", "Aql", 298.828, 6.407, 3.71, nil},
	{"Grumium", "ξ Dra", "Dra", 268.382, 56.873, 3.75, nil},
	{"Alula Australis", "ξ UMa", "UMa", 169.545, 31.529, 3.78, nil},
	{"Zaniah", "η Vir", "Vir", 184.976, -0.667, 3.89, nil},
	{"Asellus Australis", "δ Cnc", "Cnc", 131.171, 18.154, 3.94, nil},
	{"Furud", "ζ CMa", "CMa", 95.078, -30.063, 3.96, nil},
	{"Alcor", "80 UMa", "UMa", 201.306, 54.988, 3.99, nil},
	{"Alkes", "α Crt", "Crt", 164.944, -18.299, 4.08, nil},
	{"Syrma", "ι Vir", "Vir", 214.004, -6.001, 4.08, nil},
	{"Acubens", "α Cnc", "Cnc", 134.622, 11.858, 4.25, nil},
	{"Asellus Borealis", "γ Cnc", "Cnc", 130.821, 21.469, 4.66, nil},
}
