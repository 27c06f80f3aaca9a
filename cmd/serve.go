package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"github.com/tabfuse/tabfuse/constants"
	"github.com/tabfuse/tabfuse/detect"
	"github.com/tabfuse/tabfuse/model"
	"github.com/tabfuse/tabfuse/util"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves transcription over HTTP",
	Long:  `Serves transcription over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// ServeStats aggregates counters across requests; flushed to disk on
// a debounce so request bursts write once.
type ServeStats struct {
	Runs       int
	TotalNotes int
}

var (
	serveStatsMu sync.Mutex
	serveStats   ServeStats
	flushStats   = debounce.New(2 * time.Second)
)

func recordRun(totalNotes int) {
	serveStatsMu.Lock()
	serveStats.Runs++
	serveStats.TotalNotes += totalNotes
	snapshot := serveStats
	serveStatsMu.Unlock()

	flushStats(func() {
		os.MkdirAll(constants.GetOutDir(), 0777)
		util.CreateBinary(filepath.Join(constants.GetOutDir(), "serve_stats.dat"), snapshot)
	})
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: detail})
}

func HandleTranscribe(w http.ResponseWriter, r *http.Request) {
	var input model.TranscribeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, 400, "Could not unmarshal request body: "+err.Error())
		return
	}

	audio := detect.AudioDetections{Frames: input.AudioFrames, Onsets: input.Onsets}
	if input.AudioContext != nil {
		audio.Context = *input.AudioContext
	}
	video := detect.VideoDetections{Notes: input.VideoNotes}
	if input.VideoContext != nil {
		video.Context = *input.VideoContext
	}

	result := runPipeline(audio, video, model.StandardTuning)
	recordRun(result.Stats.TotalNotes)

	json.NewEncoder(w).Encode(model.TranscribeResponse{
		RunId:  uuid.New().String(),
		Tab:    result.Tab,
		Notes:  result.Notes,
		Events: result.Events,
		Stats:  result.Stats,
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "ok")
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/transcribe", HandleTranscribe).Methods("POST")
	router.HandleFunc("/health", handleHealth).Methods("GET")

	handler := cors.Default().Handler(router)
	port := constants.GetPort()
	fmt.Printf("Listening on :%v\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
