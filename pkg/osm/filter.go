package osm

import "github.com/paulmach/osm"

// drivable lists the highway values kept for the road network.
var drivable = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
}

// accessible reports whether a way with these tags belongs in the network.
func accessible(tags osm.Tags) bool {
	if !drivable[tags.Find("highway")] {
		return false
	}
	if tags.Find("area") == "yes" {
		return false
	}
	switch tags.Find("access") {
	case "no", "private":
		return false
	}
	return tags.Find("motor_vehicle") != "no"
}

// direction returns which way(s) along the node list a way may be traversed.
// An explicit oneway tag overrides the implied oneway of motorways and
// roundabouts; reversible ways are dropped.
func direction(tags osm.Tags) (forward, backward bool) {
	hw := tags.Find("highway")
	implied := hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout"

	switch tags.Find("oneway") {
	case "yes", "true", "1":
		return true, false
	case "-1", "reverse":
		return false, true
	case "no":
		return true, true
	case "reversible":
		return false, false
	}
	return true, !implied
}
