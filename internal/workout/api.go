package workout

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

func NewAPI(logger *slog.Logger, service *Service) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /workouts", handleListWorkouts(logger, service))
	mux.Handle("GET /workouts/{id}", handleGetWorkout(logger, service))
	mux.Handle("POST /workouts", handleAddWorkout(logger, service))

	return mux
}

func handleListWorkouts(logger *slog.Logger, service *Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		workouts, err := service.List(r.Context())
		if err != nil {
			logger.Error("Error getting workouts", slog.Any("error", err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(logger, w, http.StatusOK, workouts)
	})
}

func handleGetWorkout(logger *slog.Logger, service *Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		workout, err := service.Get(r.Context(), r.PathValue("id"))
		if errors.Is(err, ErrWorkoutNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err != nil {
			logger.Error("Error getting workout", slog.Any("error", err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(logger, w, http.StatusOK, workout)
	})
}

func handleAddWorkout(logger *slog.Logger, service *Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pkg Package
		if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		workout, err := service.Add(r.Context(), pkg, "")
		if errors.Is(err, ErrUnsupportedWorkoutType) || errors.Is(err, ErrPackageSize) || errors.Is(err, ErrNotFinite) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			logger.Error("Error adding workout", slog.Any("error", err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(logger, w, http.StatusCreated, workout)
	})
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Error encoding response", slog.Any("error", err))
	}
}
