package httpserver

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"
	"gopkg.in/guregu/null.v4"

	"github.com/indobig/sizecompare/comparison"
	"github.com/indobig/sizecompare/geo"
	"github.com/indobig/sizecompare/registry"
)

type APILabel struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type APICountry struct {
	Name             string            `json:"name"`
	Selectable       bool              `json:"selectable"`
	Reference        bool              `json:"reference,omitempty"`
	AreaKm2          null.Float        `json:"area_km2"`
	Style            comparison.Style  `json:"style"`
	Geometry         *geojson.Geometry `json:"geometry,omitempty"`
	Label            *APILabel         `json:"label,omitempty"`
	EstimatedAreaKm2 null.Float        `json:"estimated_area_km2"`
}

type getCountriesResponse struct {
	Countries []*APICountry `json:"countries"`
}

type getOneCountryResponse struct {
	Country *APICountry `json:"country"`
}

type getCountriesAtResponse struct {
	Countries []string `json:"countries"`
}

type styleResponse struct {
	Name  string           `json:"name"`
	Style comparison.Style `json:"style"`
}

func regionToAPICountry(cmp *comparison.Comparator, region *registry.Region, includeGeometry bool) *APICountry {
	reg := cmp.Registry()

	apiCountry := &APICountry{
		Name:       region.Name,
		Selectable: region.Selectable(),
		Reference:  reg.IsReference(region.Name),
		Style:      cmp.Style(region.Name),
	}

	if area, ok := reg.Area(region.Name); ok {
		apiCountry.AreaKm2 = null.FloatFrom(area)
	}

	if includeGeometry && region.Supported {
		geometry := region.Geometry()
		apiCountry.Geometry = geojson.NewGeometry(geometry)
		apiCountry.Label = &APILabel{Lat: region.Label.Lat(), Lon: region.Label.Lon()}
		apiCountry.EstimatedAreaKm2 = null.FloatFrom(geo.GeodesicAreaKm2(geometry))
	}

	return apiCountry
}

// lookupRegion answers 404 itself when 'name' is not registered.
func lookupRegion(c *gin.Context, cmp *comparison.Comparator) *registry.Region {
	name := c.Param("name")
	region := cmp.Registry().Get(name)
	if region == nil {
		c.JSON(http.StatusNotFound, &APIErrorResponse{
			Error: "country not found",
		})
	}
	return region
}

// Unknown regions and features shadowed by a later duplicate are left out.
func (srv *HTTPServer) handleGetCountries(c *gin.Context, cmp *comparison.Comparator) {
	reg := cmp.Registry()

	apiCountries := make([]*APICountry, 0, reg.Len())
	for _, region := range reg.All() {
		if region.Unknown || reg.Get(region.Name) != region {
			continue
		}
		apiCountries = append(apiCountries, regionToAPICountry(cmp, region, false))
	}

	sort.Slice(apiCountries, func(i, j int) bool {
		return apiCountries[i].Name < apiCountries[j].Name
	})

	c.JSON(http.StatusOK, getCountriesResponse{apiCountries})
}

func (srv *HTTPServer) handleGetCountry(c *gin.Context, cmp *comparison.Comparator) {
	region := lookupRegion(c, cmp)
	if region == nil {
		return
	}
	c.JSON(http.StatusOK, getOneCountryResponse{regionToAPICountry(cmp, region, true)})
}

func parseCoordinate(c *gin.Context, key string, limit float64) (float64, bool) {
	val, err := strconv.ParseFloat(c.Query(key), 64)
	if err != nil || val < -limit || val > limit {
		c.JSON(http.StatusBadRequest, &APIErrorResponse{
			Error: "missing or malformed '" + key + "'",
		})
		return 0, false
	}
	return val, true
}

func (srv *HTTPServer) handleGetCountriesAt(c *gin.Context, cmp *comparison.Comparator) {
	lat, ok := parseCoordinate(c, "lat", 90)
	if !ok {
		return
	}
	lon, ok := parseCoordinate(c, "lon", 180)
	if !ok {
		return
	}

	regions := cmp.Registry().At(lon, lat)
	names := make([]string, len(regions))
	for idx, region := range regions {
		names[idx] = region.Name
	}

	c.JSON(http.StatusOK, getCountriesAtResponse{names})
}

func (srv *HTTPServer) handleHover(c *gin.Context, cmp *comparison.Comparator) {
	region := lookupRegion(c, cmp)
	if region == nil {
		return
	}
	c.JSON(http.StatusOK, styleResponse{region.Name, cmp.Hover(region.Name)})
}

func (srv *HTTPServer) handleUnhover(c *gin.Context, cmp *comparison.Comparator) {
	region := lookupRegion(c, cmp)
	if region == nil {
		return
	}
	c.JSON(http.StatusOK, styleResponse{region.Name, cmp.Unhover(region.Name)})
}
