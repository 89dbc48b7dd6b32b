package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nickzhog/storage-bench/internal/server/bench"
	"github.com/nickzhog/storage-bench/internal/server/server"
	"github.com/nickzhog/storage-bench/pkg/history"
)

func (h *handler) showError(w http.ResponseWriter, err string, status int) {
	h.srv.Logger.Error(err)
	m := map[string]string{
		"error": err,
	}
	data, _ := json.Marshal(m)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

type handler struct {
	srv *server.Server
}

func NewHandler(srv *server.Server) *handler {
	return &handler{srv: srv}
}

// writeResults отвечает текстом: строка-итог и по строке на каждый замер.
func writeResults(w http.ResponseWriter, message string, results ...bench.Result) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(bench.Summary(message, results...)))
}

// IndexHandler - главная страница, показывает подключенные хранилища
func (h *handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "storage bench, backends: %s\n", strings.Join(h.srv.Backends(), ", "))
}

// Обработчик проверяет доступность всех хранилищ
func (h *handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*2)
	defer cancel()
	err := h.srv.Ping(ctx)
	if err != nil {
		h.showError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write(nil)
}

// FetchAndInsertHandler загружает историю из midgard и записывает ее во все хранилища.
func (h *handler) FetchAndInsertHandler(w http.ResponseWriter, r *http.Request) {
	results, err := h.srv.FetchAndInsert(r.Context())
	if err != nil {
		h.showError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeResults(w, "Data fetched and inserted successfully", results...)
}

// ReadDataHandler читает все записи из хранилищ, которые поддерживают чтение.
func (h *handler) ReadDataHandler(w http.ResponseWriter, r *http.Request) {
	res, err := h.srv.ReadAll(r.Context())
	if err != nil {
		h.showError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeResults(w, "Data read successfully", res)
}

// Обработчик InsertDepthHandler записывает переданную пачку во все хранилища.
//
// Тело запроса - ответ midgard /v2/history/depths/{pool}:
//
//	{
//		"meta": {...},
//		"intervals": [{"startTime": "1700000000", ...}]
//	}
func (h *handler) InsertDepthHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.showError(w, "cant get body", http.StatusBadRequest)
		return
	}

	batch, err := history.DecodeDepthHistory(body)
	if err != nil {
		h.showError(w, fmt.Sprintf("cant parse body: %s", err.Error()), http.StatusBadRequest)
		return
	}

	res, err := h.srv.InsertDepth(r.Context(), batch.Intervals)
	if err != nil {
		h.showError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeResults(w, "Data inserted successfully", res)
}

// Обработчик InsertRunePoolHandler - то же для /v2/history/runepool.
func (h *handler) InsertRunePoolHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.showError(w, "cant get body", http.StatusBadRequest)
		return
	}

	batch, err := history.DecodeRunePoolHistory(body)
	if err != nil {
		h.showError(w, fmt.Sprintf("cant parse body: %s", err.Error()), http.StatusBadRequest)
		return
	}

	res, err := h.srv.InsertRunePool(r.Context(), batch.Intervals)
	if err != nil {
		h.showError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeResults(w, "Data inserted successfully", res)
}
