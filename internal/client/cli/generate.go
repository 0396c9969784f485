package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/sitegen/internal/client/artifact"
	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/client/services"
	"github.com/dmitrijs2005/sitegen/internal/common"
)

const (
	msgNoArtifact       = "Сайт ещё не создан"
	msgPublishDisabled  = "Публикация не настроена"
	msgGenerationWaitUp = "Создаём сайт, это может занять около минуты..."
)

var errGenerationUnavailable = errors.New("balance below generation cost")

// Generate asks for a site described by prompt, reading it interactively
// when empty. It is refused while the balance is below the cost.
func (a *App) Generate(ctx context.Context, prompt string) error {
	me, ok := a.store.Current()
	if !ok {
		a.notify(common.TitleError, common.MsgNoSession)
		return services.ErrNotLoggedIn
	}
	if !a.gen.CanGenerate(me.EnergyBalance) {
		a.notify(common.TitleError, fmt.Sprintf("%s: нужно %d, у вас %d",
			common.MsgNotEnoughEnergy, a.gen.Cost(), me.EnergyBalance))
		return errGenerationUnavailable
	}

	return a.guard(&a.genBusy, func() error {
		if strings.TrimSpace(prompt) == "" {
			var err error
			prompt, err = getMultiline(a.reader, "Опишите сайт", os.Stdout)
			if err != nil {
				return err
			}
		}

		printlnFn(msgGenerationWaitUp)
		g, err := a.gen.Generate(ctx, prompt)
		if a.dropped() {
			return errDropped
		}
		if err != nil {
			a.fail(err)
			return err
		}

		a.setArtifact(models.NewArtifact(g, prompt, a.now()))
		a.notify(common.TitleSiteReady,
			fmt.Sprintf("Потрачено %d энергии, осталось %d", g.EnergyUsed, g.EnergyRemaining))
		a.render()
		return nil
	})
}

// Show prints the markup of the latest site.
func (a *App) Show(ctx context.Context) error {
	art := a.currentArtifact()
	if art == nil {
		a.notify(common.TitleError, msgNoArtifact)
		return artifact.ErrNoArtifact
	}
	printlnFn(art.HTML)
	return nil
}

// Export saves the latest site. arg may name a directory or an .html file;
// empty means the configured export location.
func (a *App) Export(ctx context.Context, arg string) error {
	dir, name := artifact.Target(arg, a.config.ExportDir, a.config.ExportFileName)
	path, err := artifact.Export(dir, name, a.currentArtifact())
	if err != nil {
		if errors.Is(err, artifact.ErrNoArtifact) {
			a.notify(common.TitleError, msgNoArtifact)
		} else {
			a.logger.Warn(ctx, "export failed", "error", err)
			a.notify(common.TitleError, err.Error())
		}
		return err
	}
	a.notify(common.TitleExported, path)
	return nil
}

// Preview serves the latest site on the configured loopback address.
func (a *App) Preview(ctx context.Context) error {
	if a.currentArtifact() == nil {
		a.notify(common.TitleError, msgNoArtifact)
		return artifact.ErrNoArtifact
	}
	url, err := a.preview.Start(a.alive, a.config.PreviewAddr)
	if err != nil {
		a.logger.Warn(ctx, "preview failed", "error", err)
		a.notify(common.TitleError, err.Error())
		return err
	}
	printlnFn("Предпросмотр: " + url + "  (скачать: " + url + "download)")
	return nil
}

// Publish uploads the latest site and prints a temporary link to it.
func (a *App) Publish(ctx context.Context) error {
	if a.publisher == nil {
		a.notify(common.TitleError, msgPublishDisabled)
		return errors.New("publishing disabled")
	}
	art := a.currentArtifact()
	if art == nil {
		a.notify(common.TitleError, msgNoArtifact)
		return artifact.ErrNoArtifact
	}
	me, ok := a.store.Current()
	if !ok {
		a.notify(common.TitleError, common.MsgNoSession)
		return services.ErrNotLoggedIn
	}

	return a.guard(&a.publishBusy, func() error {
		url, err := a.publisher.Publish(ctx, me.ID, art)
		if a.dropped() {
			return errDropped
		}
		if err != nil {
			a.logger.Warn(ctx, "publish failed", "error", err)
			a.notify(common.TitleError, common.MsgGeneric)
			return err
		}
		a.notify(common.TitlePublished, fmt.Sprintf("%s (ссылка действует %s)", url, a.publisher.LinkTTL()))
		return nil
	})
}
