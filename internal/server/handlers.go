package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fomezero/internal"
	"fomezero/internal/config"
	"fomezero/internal/dashboard"
	"fomezero/internal/pipeline"
)

const defaultClusterPrecision = 4

type StatusResponse struct {
	Checksum string              `json:"checksum"`
	Source   string              `json:"source"`
	Rows     int                 `json:"rows"`
	Stats    internal.CleanStats `json:"stats"`
	LoadedAt string              `json:"loadedAt"`
}

type OptionsResponse struct {
	dashboard.Options
	Defaults config.Pages `json:"defaults"`
	Slider   SliderRange  `json:"slider"`
}

type SliderRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

type OverviewResponse struct {
	Metrics  dashboard.Overview `json:"metrics"`
	Selected []string           `json:"selected"`
	Markers  int                `json:"markers"`
}

type CountriesResponse struct {
	Selected []string                `json:"selected"`
	Charts   dashboard.CountriesView `json:"charts"`
}

type CitiesResponse struct {
	Selected []string             `json:"selected"`
	Charts   dashboard.CitiesView `json:"charts"`
}

type CuisinesResponse struct {
	Countries []string `json:"countries"`
	Cuisines  []string `json:"cuisines"`
	dashboard.CuisinesView
}

type ClustersResponse struct {
	Precision int                 `json:"precision"`
	Clusters  []dashboard.Cluster `json:"clusters"`
}

func (s *Server) getStatus(c *gin.Context) {
	if _, ok := s.dataset(c); !ok {
		return
	}
	c.JSON(http.StatusOK, s.status())
}

func (s *Server) refresh(c *gin.Context) {
	s.loader.Invalidate()
	if _, ok := s.dataset(c); !ok {
		return
	}
	c.JSON(http.StatusOK, s.status())
}

func (s *Server) status() StatusResponse {
	ds, loadedAt := s.loader.Current()
	if ds == nil {
		return StatusResponse{}
	}
	return StatusResponse{
		Checksum: ds.Checksum,
		Source:   ds.Source,
		Rows:     len(ds.Records),
		Stats:    ds.Stats,
		LoadedAt: loadedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) getOptions(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	cu := s.cfg.Pages.Cuisines
	c.JSON(http.StatusOK, OptionsResponse{
		Options:  dashboard.BuildOptions(ds.Records),
		Defaults: s.cfg.Pages,
		Slider:   SliderRange{Min: cu.TopMin, Max: cu.TopMax, Default: cu.TopLimit},
	})
}

func (s *Server) getOverview(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	selected := dashboard.Selection(selection(c, "country"), s.cfg.Pages.Overview.Countries)
	c.JSON(http.StatusOK, OverviewResponse{
		Metrics:  dashboard.BuildOverview(ds.Records),
		Selected: selected,
		Markers:  len(dashboard.FilterCountries(ds.Records, selected)),
	})
}

func (s *Server) getMap(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	selected := dashboard.Selection(selection(c, "country"), s.cfg.Pages.Overview.Countries)

	fc, err := dashboard.Markers(dashboard.FilterCountries(ds.Records, selected))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	blob, err := json.Marshal(fc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/geo+json", blob)
}

func (s *Server) getClusters(c *gin.Context) {
	precision := defaultClusterPrecision
	if raw, ok := c.GetQuery("precision"); ok {
		p, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid precision"})
			return
		}
		precision = p
	}

	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	selected := dashboard.Selection(selection(c, "country"), s.cfg.Pages.Overview.Countries)

	clusters, err := dashboard.Clusters(dashboard.FilterCountries(ds.Records, selected), precision)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ClustersResponse{Precision: precision, Clusters: clusters})
}

func (s *Server) getCountries(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	selected := dashboard.Selection(selection(c, "country"), s.cfg.Pages.Countries.Countries)
	c.JSON(http.StatusOK, CountriesResponse{
		Selected: selected,
		Charts:   dashboard.BuildCountries(dashboard.FilterCountries(ds.Records, selected)),
	})
}

func (s *Server) getCities(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	selected := dashboard.Selection(selection(c, "country"), s.cfg.Pages.Cities.Countries)
	c.JSON(http.StatusOK, CitiesResponse{
		Selected: selected,
		Charts:   dashboard.BuildCities(dashboard.FilterCountries(ds.Records, selected)),
	})
}

func (s *Server) getCuisines(c *gin.Context) {
	page := s.cfg.Pages.Cuisines

	limit := page.TopLimit
	if raw, ok := c.GetQuery("limit"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < page.TopMin || n > page.TopMax {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between " + strconv.Itoa(page.TopMin) + " and " + strconv.Itoa(page.TopMax)})
			return
		}
		limit = n
	}

	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	countries := dashboard.Selection(selection(c, "country"), page.Countries)
	cuisines := dashboard.Selection(selection(c, "cuisine"), page.Cuisines)
	filtered := dashboard.FilterCuisines(dashboard.FilterCountries(ds.Records, countries), cuisines)

	c.JSON(http.StatusOK, CuisinesResponse{
		Countries:    countries,
		Cuisines:     cuisines,
		CuisinesView: dashboard.BuildCuisines(ds.Records, filtered, page.Featured, limit),
	})
}

// download serves the derived file on disk re-encoded with semicolons.
func (s *Server) download(c *gin.Context) {
	if _, ok := s.dataset(c); !ok {
		return
	}

	f, err := os.Open(s.cfg.ProcessedDataPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	records, err := pipeline.ReadCanonicalCSV(f, ',')
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := pipeline.WriteCSV(&buf, records, ';'); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="data.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *Server) dataset(c *gin.Context) (*internal.Dataset, bool) {
	ds, err := s.loader.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "kind": errorKind(err)})
		return nil, false
	}
	return ds, true
}

func errorKind(err error) string {
	var schemaErr *pipeline.SchemaError
	var lookupErr *pipeline.LookupError
	switch {
	case errors.As(err, &lookupErr):
		return "lookup"
	case errors.As(err, &schemaErr):
		return "schema"
	default:
		return "io"
	}
}

// selection reads a repeated or comma separated query parameter. It returns
// nil when the parameter is absent and an empty slice when it is present
// without values.
func selection(c *gin.Context, key string) []string {
	raw, ok := c.GetQueryArray(key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
