package n8n

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/sozu-dev/backoffice-api/internal/application/ports"
	"github.com/sozu-dev/backoffice-api/internal/domain"
)

// ActividadCargaPropiedades es el código de actividad que el workflow espera
// para la carga masiva de propiedades.
const ActividadCargaPropiedades = "7"

var extensionValida = regexp.MustCompile(`(?i)\.(csv|xlsx?)$`)

// ValidarExtension comprueba el sufijo del nombre de archivo antes de tocar la
// red. Solo .csv, .xls y .xlsx.
func ValidarExtension(nombre string) error {
	if !extensionValida.MatchString(nombre) {
		return domain.ErrExtensionNoPermitida
	}
	return nil
}

// CargarArchivo sube el archivo por multipart/form-data junto con los
// metadatos del actor. El progreso se sintetiza contando los bytes que el
// transporte va leyendo del cuerpo. Cancelar el contexto aborta la petición en
// vuelo; abortar siempre es seguro e idempotente.
func (c *Client) CargarArchivo(ctx context.Context, in ports.CargaArchivo) (*ports.CargaResultado, error) {
	if err := ValidarExtension(in.NombreArchivo); err != nil {
		return nil, err
	}
	if c.cargaURL == "" {
		return nil, fmt.Errorf("webhook de carga no configurado: %w", domain.ErrValidacion)
	}

	actividad := in.Actividad
	if actividad == "" {
		actividad = ActividadCargaPropiedades
	}

	// El cuerpo multipart se produce en un pipe para no retener el archivo
	// completo en memoria; el contador reporta progreso conforme el transporte
	// consume bytes.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := escribirFormulario(mw, in, actividad)
		mw.Close()
		pw.CloseWithError(err)
	}()

	cuerpo := &lectorContado{r: pr, total: in.Tamano, progreso: in.Progreso}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cargaURL, cuerpo)
	if err != nil {
		return nil, fmt.Errorf("crear petición de carga: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Correlation-Id", uuid.New().String())

	// Cliente HTTP subyacente sin reintentos: un multipart consumido no se
	// puede reenviar.
	resp, err := c.http.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("carga cancelada: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSinConexion, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta de carga: %v", domain.ErrSinConexion, err)
	}

	resultado := interpretarRespuestaCarga(raw, resp.StatusCode)
	if !resultado.Exito && resp.StatusCode >= 400 {
		return nil, &domain.RechazoServidor{Codigo: resp.StatusCode, Mensaje: resultado.Mensaje}
	}
	return resultado, nil
}

func escribirFormulario(mw *multipart.Writer, in ports.CargaArchivo, actividad string) error {
	parte, err := mw.CreateFormFile("archivo", in.NombreArchivo)
	if err != nil {
		return err
	}
	if _, err := io.Copy(parte, in.Archivo); err != nil {
		return err
	}
	campos := map[string]string{
		"usuario":        in.Usuario,
		"nombre_usuario": in.NombreUsuario,
		"actividad":      actividad,
	}
	for nombre, valor := range campos {
		if err := mw.WriteField(nombre, valor); err != nil {
			return err
		}
	}
	return nil
}

// interpretarRespuestaCarga normaliza la respuesta del workflow: success
// booleano más un mensaje bajo cualquiera de los nombres aceptados.
func interpretarRespuestaCarga(raw []byte, status int) *ports.CargaResultado {
	var cuerpo struct {
		Success bool   `json:"success"`
		Mensaje string `json:"mensaje"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &cuerpo)

	mensaje := cuerpo.Mensaje
	if mensaje == "" {
		mensaje = cuerpo.Message
	}
	if mensaje == "" {
		if cuerpo.Success {
			mensaje = "Archivo subido con éxito."
		} else {
			mensaje = fmt.Sprintf("Error %d: fallo al subir", status)
		}
	}
	return &ports.CargaResultado{Exito: cuerpo.Success, Mensaje: mensaje}
}

// lectorContado envuelve el cuerpo de la petición y reporta los bytes ya
// enviados al transporte.
type lectorContado struct {
	r        io.Reader
	total    int64
	enviados int64
	progreso ports.ProgresoFunc
}

func (l *lectorContado) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	if n > 0 {
		l.enviados += int64(n)
		if l.progreso != nil {
			l.progreso(l.enviados, l.total)
		}
	}
	return n, err
}
