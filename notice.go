package mediareport

import "errors"

// Notice is a user-facing notification describing how an operation ended.
type Notice struct {
	Title       string
	Description string
	Destructive bool // true for errors
}

func (n Notice) String() string {
	return n.Title + ": " + n.Description
}

// NoticeFor maps an error returned by this package onto the notification a
// user should see. A nil error yields the zero Notice.
func NoticeFor(err error) Notice {
	if err == nil {
		return Notice{}
	}
	var e *Error
	if !errors.As(err, &e) {
		return Notice{Title: "Erro", Description: err.Error(), Destructive: true}
	}
	switch e.Kind {
	case KindUnsupportedFileType:
		return Notice{Title: "Tipo de arquivo não suportado", Description: "Por favor, selecione um arquivo PDF ou imagem.", Destructive: true}
	case KindNoFileSelected:
		return Notice{Title: "Erro", Description: "Nenhum arquivo foi selecionado.", Destructive: true}
	case KindNetwork:
		return Notice{Title: "Erro ao enviar", Description: "Ocorreu um erro inesperado durante o envio.", Destructive: true}
	case KindServer:
		msg := e.Message
		if msg == "" {
			msg = DefaultServerMessage
		}
		return Notice{Title: "Erro ao enviar", Description: msg, Destructive: true}
	case KindUnrecognizedResponse:
		return Notice{Title: "Erro inesperado", Description: "Resposta do servidor não reconhecida.", Destructive: true}
	case KindCapture:
		return Notice{Title: "Erro ao gerar PDF", Description: "Não foi possível capturar o relatório.", Destructive: true}
	}
	return Notice{Title: "Erro", Description: e.Error(), Destructive: true}
}

// NoticeForOutcome describes a successful upload.
func NoticeForOutcome(o *UploadOutcome) Notice {
	if o.IsReport() {
		return Notice{Title: "Upload bem-sucedido", Description: "Relatório gerado e baixado com sucesso."}
	}
	msg := o.Message
	if msg == "" {
		msg = DefaultNoticeMessage
	}
	return Notice{Title: "Resposta do servidor", Description: msg}
}

// NoticeForSelection confirms a file accepted by the single-file flow.
func NoticeForSelection(f UploadedFile) Notice {
	return Notice{Title: "Arquivo selecionado", Description: f.Name + " foi selecionado com sucesso."}
}
