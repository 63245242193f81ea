package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dmitrijs2005/rpgkeeper/internal/filex"
	"github.com/dmitrijs2005/rpgkeeper/internal/netx"
	"github.com/dmitrijs2005/rpgkeeper/internal/rpcapi"
)

func printCharacters(w io.Writer, list []rpcapi.Character) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No characters")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCLASS\tHP\tSTR\tDEF\tINT")
	for _, c := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\n",
			c.ID, c.Name, c.Class, c.HitPoints, c.Strength, c.Defense, c.Intelligence)
	}
	tw.Flush()
}

func printCharacter(w io.Writer, c *rpcapi.Character) {
	fmt.Fprintf(w, "Id: %d\n", c.ID)
	fmt.Fprintf(w, "Name: %s\n", c.Name)
	fmt.Fprintf(w, "Class: %s\n", c.Class)
	fmt.Fprintf(w, "HitPoints: %d\n", c.HitPoints)
	fmt.Fprintf(w, "Strength: %d\n", c.Strength)
	fmt.Fprintf(w, "Defense: %d\n", c.Defense)
	fmt.Fprintf(w, "Intelligence: %d\n", c.Intelligence)
	if c.UserID != nil {
		fmt.Fprintf(w, "Owner: %d\n", *c.UserID)
	}
	if c.PortraitKey != "" {
		fmt.Fprintf(w, "Portrait: %s\n", c.PortraitKey)
	}
}

// readCharacterInput asks for every field, offering the values of base.
func readCharacterInput(reader *bufio.Reader, w io.Writer, base rpcapi.CharacterInput) (rpcapi.CharacterInput, error) {
	var (
		in  rpcapi.CharacterInput
		err error
	)
	if in.Name, err = GetTextDefault(reader, "Name", base.Name, w); err != nil {
		return in, err
	}
	if in.HitPoints, err = GetInt(reader, "Hit points", base.HitPoints, w); err != nil {
		return in, err
	}
	if in.Strength, err = GetInt(reader, "Strength", base.Strength, w); err != nil {
		return in, err
	}
	if in.Defense, err = GetInt(reader, "Defense", base.Defense, w); err != nil {
		return in, err
	}
	if in.Intelligence, err = GetInt(reader, "Intelligence", base.Intelligence, w); err != nil {
		return in, err
	}
	if in.Class, err = GetTextDefault(reader, "Class (Knight, Mage, Cleric)", base.Class, w); err != nil {
		return in, err
	}
	return in, nil
}

var newCharacterDefaults = rpcapi.CharacterInput{
	Name:         "Frodo",
	HitPoints:    100,
	Strength:     10,
	Defense:      10,
	Intelligence: 10,
	Class:        "Knight",
}

func (a *App) List(ctx context.Context) error {
	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	list, err := a.characterService.List(rctx)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	printCharacters(a.out, list)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, a.reader, a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	c, err := a.characterService.Get(rctx, id)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	printCharacter(a.out, c)
	return nil
}

func (a *App) Add(ctx context.Context) error {
	in, err := readCharacterInput(a.reader, a.out, newCharacterDefaults)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	list, err := a.characterService.Add(rctx, in)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	printCharacters(a.out, list)
	return nil
}

// Update loads the character first so unchanged fields keep their values.
func (a *App) Update(ctx context.Context, args []string) error {
	id, err := parseID(args, a.reader, a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	rctx, cancel := a.requestCtx(ctx)
	cur, err := a.characterService.Get(rctx, id)
	cancel()
	if err != nil {
		a.report(ctx, err)
		return err
	}

	in, err := readCharacterInput(a.reader, a.out, rpcapi.CharacterInput{
		Name:         cur.Name,
		HitPoints:    cur.HitPoints,
		Strength:     cur.Strength,
		Defense:      cur.Defense,
		Intelligence: cur.Intelligence,
		Class:        cur.Class,
	})
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	rctx, cancel = a.requestCtx(ctx)
	defer cancel()

	updated, err := a.characterService.Update(rctx, id, in)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	printCharacter(a.out, updated)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args, a.reader, a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	list, err := a.characterService.Delete(rctx, id)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	printCharacters(a.out, list)
	return nil
}

var (
	uploadPortrait   = netx.UploadToPresignedURL
	downloadPortrait = netx.DownloadFromPresignedURL
	readFile         = os.ReadFile
)

// portraitDir is where "portrait download <id> save" puts files.
const portraitDir = "portraits"

// Portrait handles "portrait upload <id> [file]" and
// "portrait download <id> [file|save]". Without a file only the presigned
// URL is printed.
func (a *App) Portrait(ctx context.Context, args []string) error {
	if len(args) == 0 || (args[0] != "upload" && args[0] != "download") {
		err := errors.New("usage: portrait upload|download <id> [file]")
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	id, err := parseID(args[1:], a.reader, a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	var path string
	if len(args) > 2 {
		path = args[2]
	}

	var data []byte
	if args[0] == "upload" && path != "" {
		if data, err = readFile(path); err != nil {
			fmt.Fprintf(a.out, "Error: %s\n", err.Error())
			return err
		}
	}

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	var u *rpcapi.PortraitURL
	if args[0] == "upload" {
		u, err = a.characterService.PortraitUploadURL(rctx, id)
	} else {
		u, err = a.characterService.PortraitDownloadURL(rctx, id)
	}
	if err != nil {
		a.report(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Key: %s\n", u.Key)
	if path == "" {
		fmt.Fprintf(a.out, "URL: %s\n", u.URL)
		if args[0] == "upload" {
			fmt.Fprintln(a.out, "Upload the image with an HTTP PUT to the URL above.")
		}
		return nil
	}

	if args[0] == "upload" {
		if err := uploadPortrait(rctx, u.URL, data, netx.ContentTypeFor(path)); err != nil {
			fmt.Fprintf(a.out, "Error: %s\n", err.Error())
			return err
		}
		fmt.Fprintf(a.out, "Uploaded %d bytes\n", len(data))
		return nil
	}

	return a.savePortrait(rctx, id, u, path)
}

func (a *App) savePortrait(ctx context.Context, id int64, u *rpcapi.PortraitURL, path string) error {
	if path == "save" {
		dir, err := filex.EnsureSubdDir(portraitDir)
		if err != nil {
			fmt.Fprintf(a.out, "Error: %s\n", err.Error())
			return err
		}
		path = filepath.Join(dir, filex.PortraitFileName(id, u.Key))
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	n, err := downloadPortrait(ctx, u.URL, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Saved %d bytes to %s\n", n, path)
	return nil
}
