// Package appupdater checks whether a newer version of an application has
// been published and tells the user about it.
//
// The latest version is read from a Google Play listing, the latest GitHub
// release, or an XML or JSON descriptor. When it is newer than the installed
// version the result is shown as a dialog, a snackbar banner or a desktop
// notification, or handed only to a Listener in Silent mode.
//
//	u := appupdater.New().
//		SetUpdateFrom(appupdater.GitHub).
//		SetGitHubUserAndRepo("acme", "notes").
//		SetInstalledVersion("1.4.0").
//		SetDisplay(appupdater.Snackbar).
//		ShowEvery(3)
//	if err := u.Start(ctx); err != nil {
//		return err
//	}
//	defer u.Close()
//
// Prompts go to a ui.Presenter. The default prints to stdout; a Bubble Tea
// program hosts them with ui.NewModel.
package appupdater
