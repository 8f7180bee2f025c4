package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type LoginUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
	if err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

type Cors struct {
	handler http.Handler
}

func (c *Cors) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	c.handler.ServeHTTP(w, r)
}

type Logger struct {
	handler http.Handler
	logger  *log.Logger
}

func (l *Logger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	l.handler.ServeHTTP(w, r)
	l.logger.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
}

type Router struct {
	addr    string
	repo    *Repository
	catalog *Catalog
	hub     *Hub
	mux     http.Handler
}

func NewRouter(addr string, repo *Repository, catalog *Catalog, hub *Hub) *Router {
	mux := http.NewServeMux()

	// WebSocket endpoint for live catalog updates
	mux.HandleFunc("/ws", AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r)
	}))

	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
			return
		}
		var loginUser LoginUser
		if err := json.NewDecoder(r.Body).Decode(&loginUser); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if loginUser.Username == "" || loginUser.Password == "" {
			respondWithError(w, http.StatusBadRequest, "Username and password are required")
			return
		}
		user := repo.FindUserByName(loginUser.Username)
		if user == nil || !user.Password.Valid {
			respondWithError(w, http.StatusUnauthorized, "Unknown user or wrong password")
			return
		}
		ok, err := ValidatePassword(loginUser.Password, user.Password.String)
		if err != nil || !ok {
			respondWithError(w, http.StatusUnauthorized, "Unknown user or wrong password")
			return
		}
		token, err := CreateJWTToken(user)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Could not create token")
			return
		}
		respondWithJSON(w, http.StatusOK, token)
	})

	mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
			return
		}
		var newUser LoginUser
		if err := json.NewDecoder(r.Body).Decode(&newUser); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if newUser.Username == "" || newUser.Password == "" {
			respondWithError(w, http.StatusBadRequest, "Username and password are required")
			return
		}
		if repo.FindUserByName(newUser.Username) != nil {
			respondWithError(w, http.StatusConflict, "Username is taken")
			return
		}
		hash, err := GeneratePassword(newUser.Password)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Could not hash password")
			return
		}
		user, err := repo.AddUser(newUser.Username)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Could not create user")
			return
		}
		if err := repo.SetPassword(user, hash); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Could not create user")
			return
		}
		respondWithJSON(w, http.StatusCreated, map[string]string{
			"status":  "success",
			"message": "User registered successfully",
		})
	})

	// Catalog index and per-card documents. POST uploads a new card record.
	mux.HandleFunc("/cards", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cards, err := repo.ListCards()
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Could not list cards")
				return
			}
			respondWithJSON(w, http.StatusOK, cards)
		case http.MethodPost:
			AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
				source, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
				if err != nil {
					respondWithError(w, http.StatusBadRequest, "Could not read body")
					return
				}
				row, err := catalog.Store(source)
				if err != nil {
					respondWithError(w, http.StatusUnprocessableEntity, err.Error())
					return
				}
				respondWithJSON(w, http.StatusCreated, row)
			})(w, r)
		default:
			respondWithError(w, http.StatusMethodNotAllowed, "Only GET and POST methods are allowed")
		}
	})

	mux.HandleFunc("/cards/", func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimPrefix(r.URL.Path, "/cards/")
		if slug == "" || strings.Contains(slug, "/") {
			respondWithError(w, http.StatusNotFound, "No such card")
			return
		}
		row := repo.FindCardBySlug(slug)
		if row == nil {
			respondWithError(w, http.StatusNotFound, "No such card")
			return
		}
		if row.Html == "" {
			respondWithError(w, http.StatusNotFound, "Card has no rendered document")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(row.Html))
	})

	fs := http.FileServer(http.Dir("./public"))
	mux.Handle("/", fs)

	logger := log.New(os.Stderr, "[http]: ", log.LstdFlags)
	return &Router{
		addr:    addr,
		repo:    repo,
		catalog: catalog,
		hub:     hub,
		mux:     &Logger{&Cors{mux}, logger},
	}
}

func (r *Router) Run() {
	go r.hub.Run()
	log.Printf("http server started on %s", r.addr)
	log.Fatal(http.ListenAndServe(r.addr, r.mux))
}
