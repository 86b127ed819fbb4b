// Package report serves holiday week windows and aggregated passenger
// summaries over http.
package report

import (
	"context"
	"encoding/json"
	logger "log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sumitbindra/tsa-passenger-analysis/business/holiday"
)

//defaultHttpHandler simple default http handler for default route
type defaultHttpHandler struct {
}

//ServeHTTP implements defaultHttpHandler http.Handler interface
func (h *defaultHttpHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Add("Application-Status", "OK")
}

// holidayWeeksHandler serves the holiday week windows of a requested year
type holidayWeeksHandler struct {
	log     *logger.Logger
	catalog *holiday.Catalog
	metrics *Collector
}

// HolidayWeeksResponse wraps the week windows served for one year
type HolidayWeeksResponse struct {
	Year         int                    `json:"year"`
	HolidayWeeks []holiday.WeekInstance `json:"holiday_weeks"`
}

func (h *holidayWeeksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil || year < 1900 || year > 2200 {
		h.metrics.observe("holidayweeks", http.StatusBadRequest, started)
		http.Error(w, "year must be a four digit number", http.StatusBadRequest)
		return
	}
	response := HolidayWeeksResponse{
		Year:         year,
		HolidayWeeks: h.catalog.WeeksForYear(year),
	}
	status := writeJSON(h.log, w, &response)
	h.metrics.observe("holidayweeks", status, started)
}

// summariesHandler serves the aggregated summaries computed at startup
type summariesHandler struct {
	log       *logger.Logger
	summaries []holiday.Summary
	metrics   *Collector
}

// SummariesResponse wraps the aggregated summary table
type SummariesResponse struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Summaries   []holiday.Summary `json:"summaries"`
}

func (h *summariesHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	started := time.Now()
	response := SummariesResponse{
		GeneratedAt: started.UTC(),
		Summaries:   h.summaries,
	}
	status := writeJSON(h.log, w, &response)
	h.metrics.observe("summaries", status, started)
}

// writeJSON marshals payload to w, returning the response status
func writeJSON(log *logger.Logger, w http.ResponseWriter, payload interface{}) int {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling response to json: error:%v", err)
		http.Error(w, "Error serving request", http.StatusInternalServerError)
		return http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(jsonData); err != nil {
		// headers are already committed, the returned status only feeds
		// the request metrics
		log.Printf("Error writing json response: %s", err)
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

// CreateServer creates configured http.Server for holiday week and
// summary requests
func CreateServer(log *logger.Logger,
	catalog *holiday.Catalog,
	summaries []holiday.Summary,
	metrics *Collector,
	httpPort int) *http.Server {

	r := mux.NewRouter()
	r.Handle("/", &defaultHttpHandler{})
	r.Handle("/v1/holidayweeks/{year}", &holidayWeeksHandler{log: log, catalog: catalog, metrics: metrics})
	r.Handle("/v1/summaries", &summariesHandler{log: log, summaries: summaries, metrics: metrics})
	r.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr: strings.Join([]string{"0.0.0.0", strconv.Itoa(httpPort)}, ":"),
		// Good practice to set timeouts to avoid Slowloris attacks.
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      r,
	}
	return srv
}

// RunWebService starts up the web service, and terminates on shutdown
// signal
func RunWebService(log *logger.Logger,
	wg *sync.WaitGroup,
	srv *http.Server,
	shutdownSignal chan bool) {

	wg.Add(1)
	defer wg.Done()
	log.Printf("Starting server on %s", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Printf("server ListenAndServe ended. %s", err)
		}
	}()

	<-shutdownSignal
	log.Printf("ending webservice on shutdown signal")
	shutdownCtx, serverCancelFunc := context.WithTimeout(context.Background(), time.Duration(5)*time.Second)
	defer serverCancelFunc()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("error shutting down webservice, error:%s", err)
	}
}
