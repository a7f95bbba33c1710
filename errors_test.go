package mediareport

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &Error{Kind: KindServer, Op: "upload", Status: 500, Message: "boom"})
	if !errors.Is(err, ErrServer) {
		t.Error("server error does not match ErrServer")
	}
	if errors.Is(err, ErrNetwork) {
		t.Error("server error matches ErrNetwork")
	}
	if KindOf(err) != KindServer {
		t.Errorf("KindOf = %v", KindOf(err))
	}
	if KindOf(io.EOF) != KindUnknown {
		t.Errorf("KindOf(io.EOF) = %v, want unknown", KindOf(io.EOF))
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := &Error{Kind: KindNetwork, Op: "upload", Err: io.ErrUnexpectedEOF}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("cause not reachable through Unwrap")
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: KindServer, Op: "upload", Status: 422, Message: "Imagem ilegível."}
	want := "mediareport: upload: server error (status 422): Imagem ilegível."
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	capture := captureError("loading region", io.EOF)
	if got := capture.Error(); !strings.HasSuffix(got, "capture error: loading region: EOF") {
		t.Errorf("Error() = %q", got)
	}
}

func TestKindString(t *testing.T) {
	if KindUnrecognizedResponse.String() != "unrecognized response" {
		t.Errorf("String() = %q", KindUnrecognizedResponse.String())
	}
	if Kind(99).String() != "kind(99)" {
		t.Errorf("String() = %q", Kind(99).String())
	}
}

func TestNoticeFor(t *testing.T) {
	tests := []struct {
		err   error
		title string
		desc  string
	}{
		{ErrUnsupportedFileType, "Tipo de arquivo não suportado", "Por favor, selecione um arquivo PDF ou imagem."},
		{ErrNoFileSelected, "Erro", "Nenhum arquivo foi selecionado."},
		{ErrNetwork, "Erro ao enviar", "Ocorreu um erro inesperado durante o envio."},
		{ErrServer, "Erro ao enviar", DefaultServerMessage},
		{ErrUnrecognizedResponse, "Erro inesperado", "Resposta do servidor não reconhecida."},
		{ErrCapture, "Erro ao gerar PDF", "Não foi possível capturar o relatório."},
		{io.EOF, "Erro", "EOF"},
	}
	for _, tt := range tests {
		n := NoticeFor(tt.err)
		if n.Title != tt.title || n.Description != tt.desc {
			t.Errorf("NoticeFor(%v) = %+v, want %q / %q", tt.err, n, tt.title, tt.desc)
		}
		if !n.Destructive {
			t.Errorf("NoticeFor(%v) is not destructive", tt.err)
		}
	}

	if n := NoticeFor(nil); n != (Notice{}) {
		t.Errorf("NoticeFor(nil) = %+v, want zero", n)
	}
}

func TestNoticeForOutcome(t *testing.T) {
	n := NoticeForOutcome(&UploadOutcome{})
	if n.Description != DefaultNoticeMessage || n.Destructive {
		t.Errorf("empty message notice = %+v", n)
	}
	if got := n.String(); got != "Resposta do servidor: "+DefaultNoticeMessage {
		t.Errorf("String() = %q", got)
	}
}

func TestNoticeForSelection(t *testing.T) {
	n := NoticeForSelection(UploadedFile{Name: "epi.jpg"})
	if n.Description != "epi.jpg foi selecionado com sucesso." || n.Destructive {
		t.Errorf("notice = %+v", n)
	}
}
