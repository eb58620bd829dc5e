package shared

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/go-playground/form"
	"github.com/gorilla/mux"
)

// Decoder maps url.Values onto DTO structs across all controllers.
var Decoder = form.NewDecoder()

func SetFlash(w http.ResponseWriter, name string, value []byte) {
	c := &http.Cookie{
		Name:  name,
		Value: base64.URLEncoding.EncodeToString(value),
		Path:  "/",
	}
	http.SetCookie(w, c)
}

// PathParam returns a mux route variable by name, "" when absent.
func PathParam(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

func Redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusFound)
}

func ExpireCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:    name,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(1, 0),
	})
}
