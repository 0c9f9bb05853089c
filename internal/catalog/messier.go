package catalog

import (
	"strconv"

	"github.com/litescript/starward/internal/astro"
)

type messierRow struct {
	n       int
	name    string
	kind    Kind
	con     string
	raH     int
	raM     float64
	decD    int
	decM    int
	mag     float64
	aliases []string
}

// Messier returns the 110 Messier objects, J2000, in catalog order.
func Messier() []Object {
	out := make([]Object, len(messierRows))
	for i, m := range messierRows {
		id := "M" + strconv.Itoa(m.n)
		out[i] = Object{
			ID:            id,
			Name:          m.name,
			Aliases:       append([]string{"Messier " + strconv.Itoa(m.n)}, m.aliases...),
			Kind:          m.kind,
			Constellation: m.con,
			RAHours:       float64(m.raH) + m.raM/60,
			DecDeg:        astro.FromDMS(m.decD, m.decM, 0).Degrees(),
			Mag:           m.mag,
		}
	}
	return out
}

// Declinations between 0° and -1° carry the sign on the minutes, following
// astro.FromDMS.
var messierRows = []messierRow{
	{1, "Crab Nebula", KindSupernovaRemnant, "Tau", 5, 34.5, 22, 1, 8.4, []string{"NGC 1952"}},
	{2, "", KindGlobularCluster, "Aqr", 21, 33.5, 0, -49, 6.5, []string{"NGC 7089"}},
	{3, "", KindGlobularCluster, "CVn", 13, 42.2, 28, 23, 6.2, []string{"NGC 5272"}},
	{4, "", KindGlobularCluster, "Sco", 16, 23.6, -26, 32, 5.6, []string{"NGC 6121"}},
	{5, "", KindGlobularCluster, "Ser", 15, 18.6, 2, 5, 5.6, []string{"NGC 5904"}},
	{6, "Butterfly Cluster", KindOpenCluster, "Sco", 17, 40.1, -32, 13, 4.2, []string{"NGC 6405"}},
	{7, "Ptolemy Cluster", KindOpenCluster, "Sco", 17, 53.9, -34, 49, 3.3, []string{"NGC 6475"}},
	{8, "Lagoon Nebula", KindNebula, "Sgr", 18, 3.8, -24, 23, 6.0, []string{"NGC 6523"}},
	{9, "", KindGlobularCluster, "Oph", 17, 19.2, -18, 31, 7.7, []string{"NGC 6333"}},
	{10, "", KindGlobularCluster, "Oph", 16, 57.1, -4, 6, 6.6, []string{"NGC 6254"}},
	{11, "Wild Duck Cluster", KindOpenCluster, "Sct", 18, 51.1, -6, 16, 6.3, []string{"NGC 6705"}},
	{12, "", KindGlobularCluster, "Oph", 16, 47.2, -1, 57, 6.7, []string{"NGC 6218"}},
	{13, "Hercules Cluster", KindGlobularCluster, "Her", 16, 41.7, 36, 28, 5.8, []string{"NGC 6205", "Great Globular Cluster"}},
	{14, "", KindGlobularCluster, "Oph", 17, 37.6, -3, 15, 7.6, []string{"NGC 6402"}},
	{15, "", KindGlobularCluster, "Peg", 21, 30.0, 12, 10, 6.2, []string{"NGC 7078"}},
	{16, "Eagle Nebula", KindNebula, "Ser", 18, 18.8, -13, 47, 6.0, []string{"NGC 6611"}},
	{17, "Omega Nebula", KindNebula, "Sgr", 18, 20.8, -16, 11, 6.0, []string{"NGC 6618", "Swan Nebula"}},
	{18, "", KindOpenCluster, "Sgr", 18, 19.9, -17, 8, 7.5, []string{"NGC 6613"}},
	{19, "", KindGlobularCluster, "Oph", 17, 2.6, -26, 16, 6.8, []string{"NGC 6273"}},
	{20, "Trifid Nebula", KindNebula, "Sgr", 18, 2.6, -23, 2, 6.3, []string{"NGC 6514"}},
	{21, "", KindOpenCluster, "Sgr", 18, 4.6, -22, 30, 6.5, []string{"NGC 6531"}},
	{22, "", KindGlobularCluster, "Sgr", 18, 36.4, -23, 54, 5.1, []string{"NGC 6656"}},
	{23, "", KindOpenCluster, "Sgr", 17, 56.8, -19, 1, 6.9, []string{"NGC 6494"}},
	{24, "Sagittarius Star Cloud", KindOther, "Sgr", 18, 16.9, -18, 29, 4.6, nil},
	{25, "", KindOpenCluster, "Sgr", 18, 31.6, -19, 15, 4.6, []string{"IC 4725"}},
	{26, "", KindOpenCluster, "Sct", 18, 45.2, -9, 24, 8.0, []string{"NGC 6694"}},
	{27, "Dumbbell Nebula", KindPlanetaryNebula, "Vul", 19, 59.6, 22, 43, 7.5, []string{"NGC 6853"}},
	{28, "", KindGlobularCluster, "Sgr", 18, 24.5, -24, 52, 6.8, []string{"NGC 6626"}},
	{29, "", KindOpenCluster, "Cyg", 20, 23.9, 38, 31, 7.1, []string{"NGC 6913"}},
	{30, "", KindGlobularCluster, "Cap", 21, 40.4, -23, 11, 7.2, []string{"NGC 7099"}},
	{31, "Andromeda Galaxy", KindGalaxy, "And", 0, 42.7, 41, 16, 3.4, []string{"NGC 224", "Andromeda"}},
	{32, "", KindGalaxy, "And", 0, 42.7, 40, 52, 8.1, []string{"NGC 221"}},
	{33, "Triangulum Galaxy", KindGalaxy, "Tri", 1, 33.9, 30, 39, 5.7, []string{"NGC 598"}},
	{34, "", KindOpenCluster, "Per", 2, 42.0, 42, 47, 5.5, []string{"NGC 1039"}},
	{35, "", KindOpenCluster, "Gem", 6, 8.9, 24, 20, 5.3, []string{"NGC 2168"}},
	{36, "", KindOpenCluster, "Aur", 5, 36.1, 34, 8, 6.3, []string{"NGC 1960"}},
	{37, "", KindOpenCluster, "Aur", 5, 52.4, 32, 33, 6.2, []string{"NGC 2099"}},
	{38, "", KindOpenCluster, "Aur", 5, 28.7, 35, 50, 7.4, []string{"NGC 1912"}},
	{39, "", KindOpenCluster, "Cyg", 21, 32.2, 48, 26, 4.6, []string{"NGC 7092"}},
	{40, "Winnecke 4", KindOther, "UMa", 12, 22.4, 58, 5, 8.4, nil},
	{41, "", KindOpenCluster, "CMa", 6, 46.0, -20, 44, 4.5, []string{"NGC 2287"}},
	{42, "Orion Nebula", KindNebula, "Ori", 5, 35.4, -5, 27, 4.0, []string{"NGC 1976", "Great Orion Nebula"}},
	{43, "De Mairan's Nebula", KindNebula, "Ori", 5, 35.6, -5, 16, 9.0, []string{"NGC 1982"}},
	{44, "Beehive Cluster", KindOpenCluster, "Cnc", 8, 40.1, 19, 59, 3.7, []string{"NGC 2632", "Praesepe"}},
	{45, "Pleiades", KindOpenCluster, "Tau", 3, 47.0, 24, 7, 1.6, []string{"Seven Sisters", "Subaru"}},
	{46, "", KindOpenCluster, "Pup", 7, 41.8, -14, 49, 6.1, []string{"NGC 2437"}},
	{47, "", KindOpenCluster, "Pup", 7, 36.6, -14, 30, 4.2, []string{"NGC 2422"}},
	{48, "", KindOpenCluster, "Hya", 8, 13.8, -5, 48, 5.8, []string{"NGC 2548"}},
	{49, "", KindGalaxy, "Vir", 12, 29.8, 8, 0, 8.4, []string{"NGC 4472"}},
	{50, "", KindOpenCluster, "Mon", 7, 3.2, -8, 20, 5.9, []string{"NGC 2323"}},
	{51, "Whirlpool Galaxy", KindGalaxy, "CVn", 13, 29.9, 47, 12, 8.4, []string{"NGC 5194"}},
	{52, "", KindOpenCluster, "Cas", 23, 24.2, 61, 35, 7.3, []string{"NGC 7654"}},
	{53, "", KindGlobularCluster, "Com", 13, 12.9, 18, 10, 7.6, []string{"NGC 5024"}},
	{54, "", KindGlobularCluster, "Sgr", 18, 55.1, -30, 29, 7.6, []string{"NGC 6715"}},
	{55, "", KindGlobularCluster, "Sgr", 19, 40.0, -30, 58, 6.3, []string{"NGC 6809"}},
	{56, "", KindGlobularCluster, "Lyr", 19, 16.6, 30, 11, 8.3, []string{"NGC 6779"}},
	{57, "Ring Nebula", KindPlanetaryNebula, "Lyr", 18, 53.6, 33, 2, 8.8, []string{"NGC 6720"}},
	{58, "", KindGalaxy, "Vir", 12, 37.7, 11, 49, 9.7, []string{"NGC 4579"}},
	{59, "", KindGalaxy, "Vir", 12, 42.0, 11, 39, 9.6, []string{"NGC 4621"}},
	{60, "", KindGalaxy, "Vir", 12, 43.7, 11, 33, 8.8, []string{"NGC 4649"}},
	{61, "", KindGalaxy, "Vir", 12, 21.9, 4, 28, 9.7, []string{"NGC 4303"}},
	{62, "", KindGlobularCluster, "Oph", 17, 1.2, -30, 7, 6.5, []string{"NGC 6266"}},
	{63, "Sunflower Galaxy", KindGalaxy, "CVn", 13, 15.8, 42, 2, 8.6, []string{"NGC 5055"}},
	{64, "Black Eye Galaxy", KindGalaxy, "Com", 12, 56.7, 21, 41, 8.5, []string{"NGC 4826"}},
	{65, "", KindGalaxy, "Leo", 11, 18.9, 13, 5, 9.3, []string{"NGC 3623"}},
	{66, "", KindGalaxy, "Leo", 11, 20.2, 12, 59, 8.9, []string{"NGC 3627"}},
	{67, "", KindOpenCluster, "Cnc", 8, 51.3, 11, 49, 6.1, []string{"NGC 2682"}},
	{68, "", KindGlobularCluster, "Hya", 12, 39.5, -26, 45, 7.8, []string{"NGC 4590"}},
	{69, "", KindGlobularCluster, "Sgr", 18, 31.4, -32, 21, 7.6, []string{"NGC 6637"}},
	{70, "", KindGlobularCluster, "Sgr", 18, 43.2, -32, 18, 7.9, []string{"NGC 6681"}},
	{71, "", KindGlobularCluster, "Sge", 19, 53.8, 18, 47, 8.2, []string{"NGC 6838"}},
	{72, "", KindGlobularCluster, "Aqr", 20, 53.5, -12, 32, 9.3, []string{"NGC 6981"}},
	{73, "", KindOther, "Aqr", 20, 59.0, -12, 38, 9.0, []string{"NGC 6994"}},
	{74, "Phantom Galaxy", KindGalaxy, "Psc", 1, 36.7, 15, 47, 9.4, []string{"NGC 628"}},
	{75, "", KindGlobularCluster, "Sgr", 20, 6.1, -21, 55, 8.5, []string{"NGC 6864"}},
	{76, "Little Dumbbell Nebula", KindPlanetaryNebula, "Per", 1, 42.4, 51, 34, 10.1, []string{"NGC 650"}},
	{77, "Cetus A", KindGalaxy, "Cet", 2, 42.7, 0, -1, 8.9, []string{"NGC 1068"}},
	{78, "", KindNebula, "Ori", 5, 46.7, 0, 3, 8.3, []string{"NGC 2068"}},
	{79, "", KindGlobularCluster, "Lep", 5, 24.5, -24, 33, 7.7, []string{"NGC 1904"}},
	{80, "", KindGlobularCluster, "Sco", 16, 17.0, -22, 59, 7.3, []string{"NGC 6093"}},
	{81, "Bode's Galaxy", KindGalaxy, "UMa", 9, 55.6, 69, 4, 6.9, []string{"NGC 3031"}},
	{82, "Cigar Galaxy", KindGalaxy, "UMa", 9, 55.8, 69, 41, 8.4, []string{"NGC 3034"}},
	{83, "Southern Pinwheel Galaxy", KindGalaxy, "Hya", 13, 37.0, -29, 52, 7.5, []string{"NGC 5236"}},
	{84, "", KindGalaxy, "Vir", 12, 25.1, 12, 53, 9.1, []string{"NGC 4374"}},
	{85, "", KindGalaxy, "Com", 12, 25.4, 18, 11, 9.1, []string{"NGC 4382"}},
	{86, "", KindGalaxy, "Vir", 12, 26.2, 12, 57, 8.9, []string{"NGC 4406"}},
	{87, "Virgo A", KindGalaxy, "Vir", 12, 30.8, 12, 23, 8.6, []string{"NGC 4486"}},
	{88, "", KindGalaxy, "Com", 12, 32.0, 14, 25, 9.6, []string{"NGC 4501"}},
	{89, "", KindGalaxy, "Vir", 12, 35.7, 12, 33, 9.8, []string{"NGC 4552"}},
	{90, "", KindGalaxy, "Vir", 12, 36.8, 13, 10, 9.5, []string{"NGC 4569"}},
	{91, "", KindGalaxy, "Com", 12, 35.4, 14, 30, 10.2, []string{"NGC 4548"}},
	{92, "", KindGlobularCluster, "Her", 17, 17.1, 43, 8, 6.4, []string{"NGC 6341"}},
	{93, "", KindOpenCluster, "Pup", 7, 44.6, -23, 52, 6.0, []string{"NGC 2447"}},
	{94, "Cat's Eye Galaxy", KindGalaxy, "CVn", 12, 50.9, 41, 7, 8.2, []string{"NGC 4736"}},
	{95, "", KindGalaxy, "Leo", 10, 44.0, 11, 42, 9.7, []string{"NGC 3351"}},
	{96, "", KindGalaxy, "Leo", 10, 46.8, 11, 49, 9.2, []string{"NGC 3368"}},
	{97, "Owl Nebula", KindPlanetaryNebula, "UMa", 11, 14.8, 55, 1, 9.9, []string{"NGC 3587"}},
	{98, "", KindGalaxy, "Com", 12, 13.8, 14, 54, 10.1, []string{"NGC 4192"}},
	{99, "", KindGalaxy, "Com", 12, 18.8, 14, 25, 9.9, []string{"NGC 4254"}},
	{100, "", KindGalaxy, "Com", 12, 22.9, 15, 49, 9.3, []string{"NGC 4321"}},
	{101, "Pinwheel Galaxy", KindGalaxy, "UMa", 14, 3.2, 54, 21, 7.9, []string{"NGC 5457"}},
	{102, "Spindle Galaxy", KindGalaxy, "Dra", 15, 6.5, 55, 46, 9.9, []string{"NGC 5866"}},
	{103, "", KindOpenCluster, "Cas", 1, 33.2, 60, 42, 7.4, []string{"NGC 581"}},
	{104, "Sombrero Galaxy", KindGalaxy, "Vir", 12, 40.0, -11, 37, 8.0, []string{"NGC 4594"}},
	{105, "", KindGalaxy, "Leo", 10, 47.8, 12, 35, 9.3, []string{"NGC 3379"}},
	{106, "", KindGalaxy, "CVn", 12, 19.0, 47, 18, 8.4, []string{"NGC 4258"}},
	{107, "", KindGlobularCluster, "Oph", 16, 32.5, -13, 3, 7.9, []string{"NGC 6171"}},
	{108, "", KindGalaxy, "UMa", 11, 11.5, 55, 40, 10.0, []string{"NGC 3556"}},
	{109, "", KindGalaxy, "UMa", 11, 57.6, 53, 23, 9.8, []string{"NGC 3992"}},
	{110, "", KindGalaxy, "And", 0, 40.4, 41, 41, 8.5, []string{"NGC 205"}},
}
