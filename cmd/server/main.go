package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"hvac_advisor/internal/config"
	"hvac_advisor/internal/dataset"
	"hvac_advisor/internal/hvac"
	"hvac_advisor/internal/mqtt"
	"hvac_advisor/internal/ws"
)

func main() {
	dataPath := flag.String("data", "", "path to the sensor dataset (overrides config)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	table, err := dataset.LoadFile(cfg.Data.Path)
	if err != nil {
		log.WithError(err).WithField("path", cfg.Data.Path).Fatal("loading dataset")
	}
	if tr, ok := table.TimeRange(); ok {
		log.WithFields(logrus.Fields{
			"rows":  table.Len(),
			"start": tr.Start.Format("2006-01-02 15:04"),
			"end":   tr.End.Format("2006-01-02 15:04"),
		}).Info("dataset loaded")
	}

	advisor, err := hvac.NewAdvisor(table, cfg.ModelCalibration(), cfg.DecisionPolicy(), log)
	if err != nil {
		log.WithError(err).Fatal("building advisor")
	}

	hub := ws.NewHub(log)
	wsHandler := ws.NewHandler(hub, advisor, table, log)

	if cfg.MQTT.Enabled {
		bridge := mqtt.NewBridge(mqtt.Options{
			Broker:         cfg.MQTT.Broker,
			ClientID:       cfg.MQTT.ClientID,
			Username:       cfg.MQTT.Username,
			Password:       cfg.MQTT.Password,
			ReadingsTopic:  cfg.MQTT.ReadingsTopic,
			DecisionsTopic: cfg.MQTT.DecisionsTopic,
		}, advisor, log)
		bridge.SetDecisionCallback(ws.NewBridge(hub, log).OnDecision)
		if err := bridge.Connect(); err != nil {
			log.WithError(err).Fatal("connecting MQTT bridge")
		}
		defer bridge.Disconnect()
	}

	mux := newMux(advisor, hub, wsHandler)

	log.WithField("addr", cfg.Server.Addr).Info("starting server")
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

type adviseRequest struct {
	Indoor   *float64 `json:"indoor"`
	Outdoor  *float64 `json:"outdoor"`
	CO2      *float64 `json:"co2"`
	Lighting *float64 `json:"lighting"`
}

func newMux(advisor *hvac.Advisor, hub *ws.Hub, wsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	mux.HandleFunc("POST /advise", func(w http.ResponseWriter, r *http.Request) {
		var req adviseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		if req.Indoor == nil || req.Outdoor == nil || req.CO2 == nil || req.Lighting == nil {
			writeJSONError(w, http.StatusBadRequest, "need numeric indoor, outdoor, co2 and lighting fields")
			return
		}

		res := advisor.SingleStep(*req.Indoor, *req.Outdoor, *req.CO2, *req.Lighting)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	})

	mux.HandleFunc("GET /stats", func(w http.ResponseWriter, r *http.Request) {
		occ, delta := advisor.NoRuleFallbacks()
		lo, hi := advisor.DeltaRange()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"occupancy_fallbacks": occ,
			"delta_fallbacks":     delta,
			"delta_range":         map[string]float64{"lo": lo, "hi": hi},
			"ws_clients":          hub.ClientCount(),
		})
	})

	mux.Handle("/ws", wsHandler)

	return mux
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
