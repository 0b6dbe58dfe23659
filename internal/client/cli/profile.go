package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pvilks/wayfarer/internal/client/models"
	"github.com/pvilks/wayfarer/internal/common"
)

func (a *App) showProfile(ctx context.Context) {
	p, err := a.store.Profiles.GetByUserID(ctx, a.sess.UserID())
	if errors.Is(err, common.ErrNotFound) {
		fmt.Println("No profile yet. Try 'setprofile'.")
		return
	}
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("%s\navatar: %s\n", p.DisplayName, p.AvatarURL)
}

func (a *App) setProfile(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Display name", os.Stdout)
	if err != nil || name == "" {
		fmt.Println("Display name is required")
		return
	}
	avatar, err := GetSimpleText(a.reader, "Avatar path (optional)", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	existing, err := a.store.Profiles.GetByUserID(ctx, a.sess.UserID())
	switch {
	case errors.Is(err, common.ErrNotFound):
		p := &models.Profile{DisplayName: name, AvatarURL: avatar}
		if err := a.writer.Create(ctx, p); err != nil {
			fmt.Println("Could not save profile:", err)
			return
		}
	case err != nil:
		fmt.Println("Error:", err)
		return
	default:
		existing.DisplayName = name
		if avatar != "" {
			existing.AvatarURL = avatar
		}
		if err := a.writer.Update(ctx, existing); err != nil {
			fmt.Println("Could not save profile:", err)
			return
		}
	}
	fmt.Println("Profile saved")
}
